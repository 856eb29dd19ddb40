package worker_test

import (
	"context"

	"github.com/pkg/errors"

	"dnstwister/config"
	"dnstwister/pkg/cache"
	"dnstwister/pkg/fuzzer"
	"dnstwister/pkg/glyph"
	"dnstwister/pkg/keyboard"
	"dnstwister/pkg/model"
	"dnstwister/pkg/tld"
	"dnstwister/pkg/worker"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubResolver map[string]string

func (s stubResolver) Resolve(_ context.Context, domain string) (string, error) {
	if domain == "broken.com" {
		return "", errors.New("timeout")
	}
	return s[domain], nil
}

type stubScorer float64

func (s stubScorer) Score(context.Context, string) (float64, error) {
	return float64(s), nil
}

func newConfig() *config.Configuration {
	return &config.Configuration{
		Domains:    []string{"abc.com"},
		Tables:     fuzzer.Tables{Glyphs: glyph.Default(), Keyboards: keyboard.All()},
		Suffixes:   tld.Default(),
		Candidates: make(chan *model.Candidate, 200),
		Buffer:     make(chan *model.Result, 10),
		Alerted:    cache.New(10),
	}
}

func candidate(d, fuzz string) *model.Candidate {
	return &model.Candidate{Variant: model.Variant{Domain: d, Fuzzer: fuzz}, Original: "abc.com"}
}

var _ = Describe("Worker", func() {
	var (
		cfg    *config.Configuration
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		cfg = newConfig()
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
	})

	Describe("QueueVariants", func() {
		Describe("If domain is valid", func() {
			It("should queue every variant but the original", func() {
				f := fuzzer.New(cfg.Tables)
				Expect(worker.QueueVariants(ctx, cfg, f, "https://abc.com/login")).To(BeTrue())
				Expect(cfg.Candidates).To(HaveLen(107))
				c := <-cfg.Candidates
				Expect(c.Fuzzer).To(Equal(model.Addition))
				Expect(c.Original).To(Equal("abc.com"))
			})
		})
		Describe("If domain is invalid", func() {
			It("should skip it", func() {
				f := fuzzer.New(cfg.Tables)
				Expect(worker.QueueVariants(ctx, cfg, f, "-abc-.com")).To(BeTrue())
				Expect(cfg.Candidates).To(BeEmpty())
			})
		})
		Describe("If context is cancelled", func() {
			It("should stop", func() {
				cfg.Candidates = make(chan *model.Candidate)
				cancel()
				f := fuzzer.New(cfg.Tables)
				Expect(worker.QueueVariants(ctx, cfg, f, "abc.com")).To(BeFalse())
			})
		})
	})

	Describe("RunResolveWorker", func() {
		resolver := stubResolver{
			"abcd.com": "192.0.2.1",
			"àbc.com":  "192.0.2.2",
		}

		BeforeEach(func() {
			go worker.RunResolveWorker(ctx, cfg, resolver, stubScorer(0.25))
		})

		Describe("If candidate resolves", func() {
			It("should send a result", func() {
				cfg.Candidates <- candidate("abcd.com", model.Addition)
				var r *model.Result
				Eventually(cfg.Buffer).Should(Receive(&r))
				Expect(r.Domain).To(Equal("abcd.com"))
				Expect(r.IDN).To(BeEmpty())
				Expect(r.Addresses).To(Equal([]string{"192.0.2.1"}))
				Expect(r.ParkedScore).To(Equal(0.25))
				Expect(r.Fuzzer).To(Equal(model.Addition))
			})
		})
		Describe("If candidate is internationalized", func() {
			It("should report both forms and the skeleton", func() {
				cfg.Candidates <- candidate("àbc.com", model.Homoglyph)
				var r *model.Result
				Eventually(cfg.Buffer).Should(Receive(&r))
				Expect(r.Domain).To(Equal("xn--bc-iia.com"))
				Expect(r.IDN).To(Equal("àbc.com"))
				Expect(r.Skeleton).To(Equal("abc.com"))
			})
		})
		Describe("If candidate does not resolve or fails", func() {
			It("should send nothing", func() {
				cfg.Candidates <- candidate("abce.com", model.Addition)
				cfg.Candidates <- candidate("broken.com", model.Various)
				Consistently(cfg.Buffer).ShouldNot(Receive())
			})
		})
		Describe("If candidate was already reported", func() {
			It("should send it once", func() {
				cfg.Candidates <- candidate("abcd.com", model.Addition)
				cfg.Candidates <- candidate("abcd.com", model.Addition)
				Eventually(cfg.Buffer).Should(Receive())
				Consistently(cfg.Buffer).ShouldNot(Receive())
			})
		})
	})
})
