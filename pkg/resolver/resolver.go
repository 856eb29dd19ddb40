package resolver

import (
	"context"
	"net"
	"time"

	"github.com/bluele/gcache"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"dnstwister/pkg/domain"
)

const defaultTimeout = 3 * time.Second

// Options configure a Resolver
type Options struct {
	// Nameserver is the host:port queried. Defaults to the first server of /etc/resolv.conf.
	Nameserver string
	Timeout    time.Duration
	CacheSize  int
	CacheTTL   time.Duration
}

// Resolution is the outcome of resolving one domain
type Resolution struct {
	Domain string
	IP     string
	Err    error
}

// Resolver looks up the first IPv4 address of domains and caches the answers
type Resolver struct {
	nameserver string
	client     *dns.Client
	tcp        *dns.Client
	cache      gcache.Cache
	ttl        time.Duration
}

// New returns a Resolver
func New(opts Options) (*Resolver, error) {
	if opts.Nameserver == "" {
		conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil {
			return nil, errors.Wrap(err, "can't read system resolvers")
		}
		if len(conf.Servers) == 0 {
			return nil, errors.New("no system resolver configured")
		}
		opts.Nameserver = net.JoinHostPort(conf.Servers[0], conf.Port)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	r := &Resolver{
		nameserver: opts.Nameserver,
		client: &dns.Client{
			UDPSize: 1024,
			Timeout: opts.Timeout,
		},
		tcp: &dns.Client{
			Net:     "tcp",
			Timeout: opts.Timeout,
		},
		ttl: opts.CacheTTL,
	}
	if opts.CacheSize > 0 {
		r.cache = gcache.New(opts.CacheSize).LRU().Build()
	}
	return r, nil
}

// Resolve returns the first A record of name. An empty string without error means the
// domain does not resolve.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	ascii, err := domain.ToASCII(name)
	if err != nil {
		return "", err
	}
	if r.cache != nil {
		if v, err := r.cache.Get(ascii); err == nil {
			return v.(string), nil
		}
	}

	q := new(dns.Msg)
	q.SetQuestion(dns.Fqdn(ascii), dns.TypeA)
	reply, _, err := r.client.ExchangeContext(ctx, q, r.nameserver)
	if err == nil && reply.Truncated {
		reply, _, err = r.tcp.ExchangeContext(ctx, q, r.nameserver)
	}
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s failed", ascii)
	}
	if reply.Truncated {
		return "", errors.Errorf("resolving %s failed: truncated answer", ascii)
	}

	var ip string
	switch reply.Rcode {
	case dns.RcodeSuccess:
		for _, rr := range reply.Answer {
			if a, ok := rr.(*dns.A); ok {
				ip = a.A.String()
				break
			}
		}
	case dns.RcodeNameError:
	default:
		return "", errors.Errorf("resolving %s failed: %s", ascii, dns.RcodeToString[reply.Rcode])
	}

	if r.cache != nil {
		if r.ttl > 0 {
			_ = r.cache.SetWithExpire(ascii, ip, r.ttl)
		} else {
			_ = r.cache.Set(ascii, ip)
		}
	}
	return ip, nil
}

// ResolveAll resolves names with at most workers concurrent queries. Results keep the
// order of names.
func (r *Resolver) ResolveAll(ctx context.Context, names []string, workers int) []Resolution {
	results := make([]Resolution, len(names))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			ip, err := r.Resolve(ctx, name)
			results[i] = Resolution{Domain: name, IP: ip, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
