package domain

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"

	"dnstwister/pkg/tld"
)

// profile is UTS #46 non-transitional processing with STD3 rules, hyphen and joiner
// checks, the bidi rule and DNS length limits.
var profile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.VerifyDNSLength(true),
	idna.Transitional(false),
)

// InvalidDomainError is returned when a string is not a valid internationalized domain
type InvalidDomainError struct {
	Domain string
	Err    error
}

func (e *InvalidDomainError) Error() string {
	if e.Err == nil {
		return "invalid domain " + quote(e.Domain)
	}
	return "invalid domain " + quote(e.Domain) + ": " + e.Err.Error()
}

// Cause returns the underlying validation failure
func (e *InvalidDomainError) Cause() error { return e.Err }

func (e *InvalidDomainError) Unwrap() error { return e.Err }

func quote(s string) string {
	return "\"" + s + "\""
}

// Domain is a validated domain split into subdomain labels, registrable label and suffix
type Domain struct {
	Subdomain []string
	Name      string
	Suffix    string

	unicode string
	ascii   string
}

// Parse validates raw and splits it using the suffix table. The longest matching
// suffix which still leaves a registrable label is used.
func Parse(raw string, suffixes *tld.Table) (*Domain, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ".")
	ascii, err := profile.ToASCII(s)
	if err != nil {
		return nil, &InvalidDomainError{Domain: raw, Err: err}
	}
	unicode, err := profile.ToUnicode(ascii)
	if err != nil {
		return nil, &InvalidDomainError{Domain: raw, Err: err}
	}
	if again, err := profile.ToASCII(unicode); err != nil || again != ascii {
		return nil, &InvalidDomainError{Domain: raw, Err: errors.New("unicode form does not round-trip")}
	}

	labels := strings.Split(unicode, ".")
	if len(labels) < 2 {
		return nil, &InvalidDomainError{Domain: raw, Err: errors.New("no suffix")}
	}
	n := suffixes.Match(labels)
	rest := labels[:len(labels)-n]
	return &Domain{
		Subdomain: append([]string(nil), rest[:len(rest)-1]...),
		Name:      rest[len(rest)-1],
		Suffix:    strings.Join(labels[len(labels)-n:], "."),
		unicode:   unicode,
		ascii:     ascii,
	}, nil
}

// Validate checks that s is a syntactically valid domain already in its normalized
// Unicode form, and returns that form. Strings which normalization would change
// (upper case, compatibility characters) are rejected.
func Validate(s string) (string, error) {
	ascii, err := profile.ToASCII(s)
	if err != nil {
		return "", &InvalidDomainError{Domain: s, Err: err}
	}
	unicode, err := profile.ToUnicode(ascii)
	if err != nil {
		return "", &InvalidDomainError{Domain: s, Err: err}
	}
	if unicode != s {
		return "", &InvalidDomainError{Domain: s, Err: errors.Errorf("normalizes to %q", unicode)}
	}
	return unicode, nil
}

// ToASCII returns the ASCII compatible encoding of a valid domain
func ToASCII(s string) (string, error) {
	ascii, err := profile.ToASCII(s)
	if err != nil {
		return "", &InvalidDomainError{Domain: s, Err: err}
	}
	return ascii, nil
}

// Unicode returns the human readable form of the domain
func (d *Domain) Unicode() string { return d.unicode }

// ASCII returns the ASCII compatible encoding of the domain
func (d *Domain) ASCII() string { return d.ascii }

func (d *Domain) String() string { return d.unicode }

// Prefix returns every label in front of the suffix
func (d *Domain) Prefix() string {
	if len(d.Subdomain) == 0 {
		return d.Name
	}
	return strings.Join(d.Subdomain, ".") + "." + d.Name
}

// HasSubdomain reports whether labels precede the registrable label
func (d *Domain) HasSubdomain() bool {
	return len(d.Subdomain) > 0
}
