package parked_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"dnstwister/pkg/parked"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const regularPage = `<html><head><title>Example</title><script>var x = "buy this domain";</script></head>
<body><h1>Welcome</h1>
<p>Example is a company building tools for people who like to build things. We have been around for a long time
and we ship software, hardware and documentation to customers all around the world every single day of the year.</p>
<a href="/about">About</a><a href="/products">Products</a><a href="/contact">Contact</a>
</body></html>`

const parkingPage = `<html><body><p>This domain is for sale!</p>
<script src="https://img.sedoparking.com/js/park.js"></script>
<a href="https://sedo.com/search?domain=abc.com">Buy</a></body></html>`

var _ = Describe("Parked", func() {
	Describe("Analyse", func() {
		home, _ := url.Parse("http://example.com/")
		Describe("If page is a regular site", func() {
			It("should not find any signal", func() {
				s := parked.Analyse("example.com", home, strings.NewReader(regularPage))
				Expect(s).To(Equal(parked.Signals{}))
				Expect(s.Score()).To(BeZero())
			})
		})
		Describe("If page is a parking page", func() {
			It("should find phrase, provider and emptiness", func() {
				s := parked.Analyse("example.com", home, strings.NewReader(parkingPage))
				Expect(s.Phrase).To(BeTrue())
				Expect(s.Provider).To(BeTrue())
				Expect(s.Empty).To(BeTrue())
				Expect(s.Redirect).To(BeFalse())
				Expect(s.Score()).To(Equal(0.75))
			})
		})
		Describe("If domain redirects to another site", func() {
			It("should flag the redirect", func() {
				other, _ := url.Parse("https://www.other.org/landing")
				s := parked.Analyse("example.com", other, strings.NewReader(regularPage))
				Expect(s.Redirect).To(BeTrue())
			})
		})
		Describe("If domain redirects to its own subdomain", func() {
			It("should not flag the redirect", func() {
				www, _ := url.Parse("https://www.example.com/")
				s := parked.Analyse("example.com", www, strings.NewReader(regularPage))
				Expect(s.Redirect).To(BeFalse())
			})
		})
	})

	Describe("Scorer", func() {
		var (
			server *httptest.Server
			hits   int32
			client *http.Client
		)

		BeforeEach(func() {
			atomic.StoreInt32(&hits, 0)
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				switch r.Host {
				case "parked.com":
					fmt.Fprint(w, parkingPage)
				case "moved.com":
					http.Redirect(w, r, "http://elsewhere.net/", http.StatusFound)
				default:
					fmt.Fprint(w, regularPage)
				}
			}))
			addr := server.Listener.Addr().String()
			client = &http.Client{
				Timeout: time.Second,
				Transport: &http.Transport{
					DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
						return (&net.Dialer{}).DialContext(ctx, network, addr)
					},
				},
			}
		})

		AfterEach(func() {
			server.Close()
		})

		Describe("If domain serves a parking page", func() {
			It("should return a high score", func() {
				s := parked.New(client, time.Second, 0, 0)
				score, err := s.Score(context.Background(), "parked.com")
				Expect(err).ToNot(HaveOccurred())
				Expect(score).To(Equal(0.75))
			})
		})
		Describe("If domain redirects away", func() {
			It("should count the redirect", func() {
				s := parked.New(client, time.Second, 0, 0)
				score, err := s.Score(context.Background(), "moved.com")
				Expect(err).ToNot(HaveOccurred())
				Expect(score).To(Equal(0.25))
			})
		})
		Describe("If domain was already scored", func() {
			It("should answer from the cache", func() {
				s := parked.New(client, time.Second, 10, time.Minute)
				_, err := s.Score(context.Background(), "regular.com")
				Expect(err).ToNot(HaveOccurred())
				score, err := s.Score(context.Background(), "regular.com")
				Expect(err).ToNot(HaveOccurred())
				Expect(score).To(BeZero())
				Expect(atomic.LoadInt32(&hits)).To(Equal(int32(1)))
			})
		})
		Describe("If domain is invalid", func() {
			It("should return an error", func() {
				s := parked.New(client, time.Second, 0, 0)
				_, err := s.Score(context.Background(), "bad domain.com")
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
