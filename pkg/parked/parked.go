package parked

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"dnstwister/pkg/domain"
)

const maxBodySize = 1 << 20

// phrases commonly found on parking and for-sale pages
var phrases = []string{
	"domain is for sale",
	"domain may be for sale",
	"buy this domain",
	"domain parking",
	"parked free",
	"parked domain",
	"related searches",
	"sponsored listings",
	"this domain has expired",
	"inquire about this domain",
}

// providers are hosts serving parking pages and their assets
var providers = []string{
	"sedoparking.com",
	"sedo.com",
	"bodis.com",
	"parkingcrew.net",
	"above.com",
	"dan.com",
	"afternic.com",
	"hugedomains.com",
	"domainsponsor.com",
	"parklogic.com",
	"undeveloped.com",
	"namebright.com",
}

// Signals are the parking indicators found on a page
type Signals struct {
	Phrase   bool
	Provider bool
	Redirect bool
	Empty    bool
}

// Score returns the fraction of signals present
func (s Signals) Score() float64 {
	n := 0
	for _, b := range []bool{s.Phrase, s.Provider, s.Redirect, s.Empty} {
		if b {
			n++
		}
	}
	return float64(n) / 4
}

// Scorer fetches domains over HTTP and estimates how likely they are parked
type Scorer struct {
	client *http.Client
	cache  gcache.Cache
	ttl    time.Duration
}

// New returns a Scorer using client. A nil client gets a default one with timeout.
func New(client *http.Client, timeout time.Duration, cacheSize int, ttl time.Duration) *Scorer {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	s := &Scorer{client: client, ttl: ttl}
	if cacheSize > 0 {
		s.cache = gcache.New(cacheSize).LRU().Build()
	}
	return s
}

// Score fetches http://<name>/ and returns its parked score between 0 and 1
func (s *Scorer) Score(ctx context.Context, name string) (float64, error) {
	ascii, err := domain.ToASCII(name)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if v, err := s.cache.Get(ascii); err == nil {
			return v.(float64), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ascii+"/", nil)
	if err != nil {
		return 0, errors.Wrapf(err, "can't build request for %s", ascii)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "can't fetch %s", ascii)
	}
	defer res.Body.Close()

	score := Analyse(ascii, res.Request.URL, io.LimitReader(res.Body, maxBodySize)).Score()
	if s.cache != nil {
		if s.ttl > 0 {
			_ = s.cache.SetWithExpire(ascii, score, s.ttl)
		} else {
			_ = s.cache.Set(ascii, score)
		}
	}
	return score, nil
}

// Analyse inspects the page served for requested, after redirects landed on final
func Analyse(requested string, final *url.URL, body io.Reader) Signals {
	var (
		signals Signals
		text    strings.Builder
		links   int
		skip    int
	)

	if final != nil && !sameSite(requested, final.Hostname()) {
		signals.Redirect = true
	}

	z := html.NewTokenizer(body)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			content := strings.ToLower(strings.Join(strings.Fields(text.String()), " "))
			for _, p := range phrases {
				if strings.Contains(content, p) {
					signals.Phrase = true
					break
				}
			}
			signals.Empty = links < 3 && len(content) < 200
			return signals
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "script", "style":
				if tt == html.StartTagToken {
					skip++
				}
			case "a":
				links++
			}
			for _, a := range t.Attr {
				if a.Key != "href" && a.Key != "src" && a.Key != "action" {
					continue
				}
				if isProvider(a.Val) {
					signals.Provider = true
				}
			}
		case html.EndTagToken:
			t := z.Token()
			if (t.Data == "script" || t.Data == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		}
	}
}

func isProvider(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range providers {
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}

func sameSite(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	sa, errA := publicsuffix.EffectiveTLDPlusOne(a)
	sb, errB := publicsuffix.EffectiveTLDPlusOne(b)
	if errA != nil || errB != nil {
		return false
	}
	return sa == sb
}
