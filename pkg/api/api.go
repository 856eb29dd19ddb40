package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"dnstwister/helper"
	"dnstwister/pkg/domain"
	"dnstwister/pkg/fuzzer"
	"dnstwister/pkg/model"
	"dnstwister/pkg/tld"
)

const (
	malformedHexDomain = "Malformed domain or domain not represented in hexadecimal format."
	malformedDomain    = "Malformed domain."
)

// DefaultMaxPrefixLength is the longest prefix, in characters, fuzzed by default
const DefaultMaxPrefixLength = 100

// route names, also used as the keys of the cross-links
const (
	routeParked = "parked_score"
	routeIP     = "resolve_ip"
	routeFuzz   = "fuzz"
	routeToHex  = "domain_to_hex"
	routeStream = "stream"
)

var endpoints = []string{routeParked, routeIP, routeFuzz}

// IPResolver returns the first IPv4 address of a domain, or an empty string
type IPResolver interface {
	Resolve(ctx context.Context, domain string) (string, error)
}

// ParkedScorer returns a score between 0 and 1 of a domain being parked
type ParkedScorer interface {
	Score(ctx context.Context, domain string) (float64, error)
}

// Server serves the JSON API
type Server struct {
	router   *mux.Router
	fuzzer   *fuzzer.Fuzzer
	suffixes *tld.Table
	resolver IPResolver
	parked   ParkedScorer
	metrics  *Metrics

	// MaxPrefixLength bounds the prefix accepted by the hexdomain routes, 0 disables it
	MaxPrefixLength int
}

// New returns a Server. Metrics are registered on registry and exposed on /metrics.
func New(f *fuzzer.Fuzzer, suffixes *tld.Table, resolver IPResolver, parked ParkedScorer, registry *prometheus.Registry) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		fuzzer:   f,
		suffixes: suffixes,
		resolver: resolver,
		parked:   parked,
		metrics:  NewMetrics(registry),

		MaxPrefixLength: DefaultMaxPrefixLength,
	}
	s.router.Use(s.metrics.middleware)
	s.router.HandleFunc("/", s.definition).Methods(http.MethodGet).Name("definition")
	s.router.HandleFunc("/to_hex/{domain}", s.domainToHex).Methods(http.MethodGet).Name(routeToHex)
	s.router.HandleFunc("/fuzz/{hexdomain}", s.fuzz).Methods(http.MethodGet).Name(routeFuzz)
	s.router.HandleFunc("/parked/{hexdomain}", s.parkedScore).Methods(http.MethodGet).Name(routeParked)
	s.router.HandleFunc("/ip/{hexdomain}", s.resolveIP).Methods(http.MethodGet).Name(routeIP)
	s.router.HandleFunc("/stream/{hexdomain}", s.stream).Methods(http.MethodGet).Name(routeStream)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet).Name("metrics")
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func root(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func baseURL(r *http.Request) string {
	return root(r) + r.URL.Path
}

// templateURL returns the URL of a route with its variable renamed to placeholder
func (s *Server) templateURL(r *http.Request, name, placeholder string) string {
	tpl, err := s.router.Get(name).GetPathTemplate()
	if err != nil {
		return ""
	}
	if i := strings.Index(tpl, "{"); i >= 0 {
		tpl = tpl[:i] + "{" + placeholder + "}"
	}
	return root(r) + tpl
}

// links returns the cross-links of a domain, skipping the key of the calling endpoint
func (s *Server) links(r *http.Request, d, skip string) map[string]interface{} {
	payload := make(map[string]interface{})
	hexdomain := helper.ToHex(d)
	for _, e := range endpoints {
		if e == skip {
			continue
		}
		u, err := s.router.Get(e).URLPath("hexdomain", hexdomain)
		if err != nil {
			continue
		}
		payload[e+"_url"] = root(r) + u.Path
	}
	if skip != "url" {
		payload["url"] = baseURL(r)
	}
	if skip != "domain" {
		payload["domain"] = d
	}
	if skip != "domain_as_hexadecimal" {
		payload["domain_as_hexadecimal"] = hexdomain
	}
	return payload
}

// parseHexDomain decodes and validates the hexdomain route variable
func (s *Server) parseHexDomain(r *http.Request) (*domain.Domain, bool) {
	raw, err := helper.FromHex(mux.Vars(r)["hexdomain"])
	if err != nil {
		log.Debugf("Invalid hexadecimal domain: %v", err)
		return nil, false
	}
	d, err := domain.Parse(raw, s.suffixes)
	if err != nil {
		log.Debugf("Invalid domain: %v", err)
		return nil, false
	}
	if s.MaxPrefixLength > 0 && utf8.RuneCountInString(d.Prefix()) > s.MaxPrefixLength {
		log.Debugf("Domain %s is too long to be fuzzed", d)
		return nil, false
	}
	return d, true
}

func (s *Server) definition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.API{
		URL:                    baseURL(r),
		DomainToHexadecimalURL: s.templateURL(r, routeToHex, "domain"),
		DomainFuzzerURL:        s.templateURL(r, routeFuzz, "domain_as_hexadecimal"),
		ParkedCheckURL:         s.templateURL(r, routeParked, "domain_as_hexadecimal"),
		IPResolutionURL:        s.templateURL(r, routeIP, "domain_as_hexadecimal"),
	})
}

func (s *Server) domainToHex(w http.ResponseWriter, r *http.Request) {
	d, err := domain.Parse(helper.ExtractHost(mux.Vars(r)["domain"]), s.suffixes)
	if err != nil {
		writeError(w, malformedDomain)
		return
	}
	writeJSON(w, http.StatusOK, s.links(r, d.Unicode(), routeToHex))
}

func (s *Server) fuzz(w http.ResponseWriter, r *http.Request) {
	d, ok := s.parseHexDomain(r)
	if !ok {
		writeError(w, malformedHexDomain)
		return
	}
	variants := s.fuzzer.Generate(d)
	s.metrics.Variants.Add(float64(len(variants)))

	fuzzy := make([]map[string]interface{}, 0, len(variants))
	for _, v := range variants {
		p := s.links(r, v.Domain, "url")
		p["fuzzer"] = v.Fuzzer
		fuzzy = append(fuzzy, p)
	}
	payload := s.links(r, d.Unicode(), routeFuzz)
	payload["fuzzy_domains"] = fuzzy
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) parkedScore(w http.ResponseWriter, r *http.Request) {
	d, ok := s.parseHexDomain(r)
	if !ok {
		writeError(w, malformedHexDomain)
		return
	}
	score, err := s.parked.Score(r.Context(), d.Unicode())
	if err != nil {
		log.Debugf("Can't score %s: %v", d, err)
	}
	payload := s.links(r, d.Unicode(), routeParked)
	payload["score"] = score
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) resolveIP(w http.ResponseWriter, r *http.Request) {
	d, ok := s.parseHexDomain(r)
	if !ok {
		writeError(w, malformedHexDomain)
		return
	}
	ip, err := s.resolver.Resolve(r.Context(), d.Unicode())
	if err != nil {
		s.metrics.ResolveErrors.Inc()
		log.Debugf("Can't resolve %s: %v", d, err)
	}
	payload := s.links(r, d.Unicode(), routeIP)
	payload["error"] = err != nil
	if ip == "" {
		payload["ip"] = false
	} else {
		payload["ip"] = ip
	}
	writeJSON(w, http.StatusOK, payload)
}

// stream upgrades to a WebSocket and sends one text frame per variant
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	d, ok := s.parseHexDomain(r)
	if !ok {
		writeError(w, malformedHexDomain)
		return
	}
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		log.Warnf("Can't upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	variants := s.fuzzer.Generate(d)
	s.metrics.Variants.Add(float64(len(variants)))
	for _, v := range variants {
		msg, _ := json.Marshal(v)
		if err := wsutil.WriteServerMessage(conn, ws.OpText, msg); err != nil {
			log.Debugf("Stream of %s interrupted: %v", d, err)
			return
		}
	}
	_ = wsutil.WriteServerMessage(conn, ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, ""))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("Can't write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}
