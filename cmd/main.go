package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/agext/levenshtein"
	"github.com/arl/statsviz"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"dnstwister/config"
	"dnstwister/helper"
	"dnstwister/pkg/api"
	"dnstwister/pkg/domain"
	"dnstwister/pkg/fuzzer"
	"dnstwister/pkg/model"
	"dnstwister/pkg/parked"
	"dnstwister/pkg/resolver"
	"dnstwister/pkg/worker"
)

func main() {
	a := kingpin.New(filepath.Base(os.Args[0]), "Generate and monitor look-alike domains")
	configFile := a.Flag("configfile", "config file").Short('c').ExistingFile()
	a.HelpFlag.Short('h')

	fuzzCmd := a.Command("fuzz", "Print the look-alike variants of a domain")
	fuzzDomain := fuzzCmd.Arg("domain", "domain or URL").Required().String()
	fuzzJSON := fuzzCmd.Flag("json", "print JSON instead of a table").Bool()
	fuzzResolve := fuzzCmd.Flag("resolve", "resolve the IPv4 address of every variant").Bool()
	fuzzRegistered := fuzzCmd.Flag("registered", "only print variants which resolve (implies --resolve)").Bool()

	hexCmd := a.Command("hex", "Print the hexadecimal form of a domain used by the API")
	hexDomain := hexCmd.Arg("domain", "domain or URL").Required().String()

	serveCmd := a.Command("serve", "Serve the HTTP API")
	watchCmd := a.Command("watch", "Watch the configured domains and alert on registered variants")

	command, err := a.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "Error parsing commandline arguments"))
		a.Usage(os.Args[1:])
		os.Exit(2)
	}

	cfg := config.GetConfig(configFile)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case fuzzCmd.FullCommand():
		err = runFuzz(ctx, cfg, os.Stdout, *fuzzDomain, *fuzzJSON, *fuzzResolve || *fuzzRegistered, *fuzzRegistered)
	case hexCmd.FullCommand():
		err = runHex(cfg, os.Stdout, *hexDomain)
	case serveCmd.FullCommand():
		err = runServe(ctx, cfg)
	case watchCmd.FullCommand():
		err = runWatch(ctx, cfg)
	}
	if err != nil {
		log.Fatalf("[ERROR] : %v", err)
	}
}

// row is a line of the fuzz command output
type row struct {
	model.Variant
	Distance int    `json:"distance"`
	IP       string `json:"ip,omitempty"`
}

func runFuzz(ctx context.Context, cfg *config.Configuration, w io.Writer, raw string, asJSON, resolve, registered bool) error {
	d, err := domain.Parse(helper.ExtractHost(raw), cfg.Suffixes)
	if err != nil {
		return err
	}
	variants := fuzzer.New(cfg.Tables).Generate(d)

	rows := make([]row, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, row{Variant: v, Distance: levenshtein.Distance(d.Unicode(), v.Domain, nil)})
	}

	if resolve {
		r, err := newResolver(cfg)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(variants))
		for _, v := range variants {
			names = append(names, v.Domain)
		}
		for i, res := range r.ResolveAll(ctx, names, cfg.Workers) {
			if res.Err != nil {
				log.Debugf("Could not resolve domain %s: %v", res.Domain, res.Err)
			}
			rows[i].IP = res.IP
		}
		if registered {
			kept := rows[:0]
			for _, r := range rows {
				if r.IP != "" {
					kept = append(kept, r)
				}
			}
			rows = kept
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FUZZER\tDOMAIN\tDISTANCE\tIP")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Fuzzer, r.Domain, r.Distance, r.IP)
	}
	return tw.Flush()
}

func runHex(cfg *config.Configuration, w io.Writer, raw string) error {
	d, err := domain.Parse(helper.ExtractHost(raw), cfg.Suffixes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, helper.ToHex(d.Unicode()))
	return err
}

func newResolver(cfg *config.Configuration) (*resolver.Resolver, error) {
	return resolver.New(resolver.Options{
		Nameserver: cfg.Nameserver,
		Timeout:    cfg.ResolveTimeout,
		CacheSize:  cfg.CacheSize,
		CacheTTL:   cfg.CacheTTL,
	})
}

func newScorer(cfg *config.Configuration) *parked.Scorer {
	return parked.New(nil, cfg.ParkedTimeout, cfg.CacheSize, cfg.CacheTTL)
}

// startDebug serves the runtime dashboard on its own listener
func startDebug(cfg *config.Configuration) {
	if cfg.DebugAddress == "" {
		return
	}
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warnf("Can't register statsviz: %v", err)
		return
	}
	go func() {
		log.Infof("Debug dashboard listening on http://%s/debug/statsviz/", cfg.DebugAddress)
		if err := http.ListenAndServe(cfg.DebugAddress, mux); err != nil {
			log.Warnf("Debug listener stopped: %v", err)
		}
	}()
}

func runServe(ctx context.Context, cfg *config.Configuration) error {
	r, err := newResolver(cfg)
	if err != nil {
		return err
	}
	startDebug(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	handler := api.New(fuzzer.New(cfg.Tables), cfg.Suffixes, r, newScorer(cfg), registry)
	handler.MaxPrefixLength = cfg.MaxPrefixLength
	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	log.Infof("API listening on http://%s/", cfg.ListenAddress)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "API server failed")
	}
	return nil
}

func runWatch(ctx context.Context, cfg *config.Configuration) error {
	if len(cfg.Domains) == 0 {
		return errors.New("domain list can't be empty")
	}
	if cfg.WatchInterval <= 0 {
		return errors.New("watch interval must be positive")
	}
	r, err := newResolver(cfg)
	if err != nil {
		return err
	}
	startDebug(cfg)

	scorer := newScorer(cfg)
	for i := 0; i < cfg.Workers; i++ {
		go worker.RunResolveWorker(ctx, cfg, r, scorer)
	}
	go worker.Notifier(ctx, cfg)
	log.Infof("Watching %d domains every %v", len(cfg.Domains), cfg.WatchInterval)
	worker.RunWatchLoop(ctx, cfg, fuzzer.New(cfg.Tables))
	return nil
}
