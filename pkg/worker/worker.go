package worker

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"dnstwister/config"
	"dnstwister/helper"
	"dnstwister/pkg/domain"
	"dnstwister/pkg/fuzzer"
	"dnstwister/pkg/model"
	"dnstwister/pkg/screenshot"
	"dnstwister/pkg/slack"
)

// Resolver returns the first IPv4 address of a domain, or an empty string
type Resolver interface {
	Resolve(ctx context.Context, domain string) (string, error)
}

// Scorer returns a score between 0 and 1 of a domain being parked
type Scorer interface {
	Score(ctx context.Context, domain string) (float64, error)
}

// RunWatchLoop queues the variants of every watched domain, then again every
// WatchInterval, until ctx is done
func RunWatchLoop(ctx context.Context, cfg *config.Configuration, f *fuzzer.Fuzzer) {
	ticker := time.NewTicker(cfg.WatchInterval)
	defer ticker.Stop()
	for {
		for _, raw := range cfg.Domains {
			if !QueueVariants(ctx, cfg, f, raw) {
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// QueueVariants sends the variants of raw to the candidates channel. It returns false
// if ctx was cancelled meanwhile.
func QueueVariants(ctx context.Context, cfg *config.Configuration, f *fuzzer.Fuzzer, raw string) bool {
	d, err := domain.Parse(helper.ExtractHost(raw), cfg.Suffixes)
	if err != nil {
		log.Warnf("Can't watch domain %s: %v", raw, err)
		return true
	}
	variants := f.Generate(d)
	log.Debugf("%d variants generated for domain %s", len(variants), d)
	for _, v := range variants {
		if v.Fuzzer == model.Original {
			continue
		}
		select {
		case <-ctx.Done():
			return false
		case cfg.Candidates <- &model.Candidate{Variant: v, Original: d.Unicode()}:
		}
	}
	return true
}

// RunResolveWorker resolves candidates and sends those newly found registered to the buffer
func RunResolveWorker(ctx context.Context, cfg *config.Configuration, r Resolver, p Scorer) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-cfg.Candidates:
			result := check(ctx, cfg, r, p, c)
			if result == nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case cfg.Buffer <- result:
			}
		}
	}
}

// check resolves a candidate and returns its details if it resolves for the first time
func check(ctx context.Context, cfg *config.Configuration, r Resolver, p Scorer, c *model.Candidate) *model.Result {
	ip, err := r.Resolve(ctx, c.Domain)
	if err != nil {
		log.Debugf("Could not resolve domain %s: %v", c.Domain, err)
		return nil
	}
	if ip == "" {
		return nil
	}
	if !cfg.Alerted.StoreIfAbsent(c.Domain) {
		return nil
	}

	ascii, err := domain.ToASCII(c.Domain)
	if err != nil {
		return nil
	}
	result := &model.Result{
		Domain:    ascii,
		Fuzzer:    c.Fuzzer,
		Original:  c.Original,
		Addresses: []string{ip},
	}
	if ascii != c.Domain {
		result.IDN = c.Domain
		result.Skeleton = cfg.Tables.Glyphs.Skeleton(c.Domain)
	}
	if p != nil {
		if result.ParkedScore, err = p.Score(ctx, c.Domain); err != nil {
			log.Debugf("Could not score domain %s: %v", c.Domain, err)
		}
	}
	if cfg.TakeScreenshot {
		result.Screenshot = screenshot.TakeScreenshot(ctx, c.Domain)
	}
	return result
}

// Notifier logs the results and posts them to Slack
func Notifier(ctx context.Context, cfg *config.Configuration) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-cfg.Buffer:
			j, _ := json.Marshal(r)
			log.Infof("A look-alike of '%v' is registered: %v", r.Original, string(j))
			if cfg.SlackWebhookURL != "" {
				go func(r *model.Result) {
					if err := slack.NewPayload(cfg, r).Post(cfg); err != nil {
						log.Warnf("Can't post to Slack: %v", err)
					}
				}(r)
			}
		}
	}
}
