package helper

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"

	tld "github.com/jpillora/go-tld"
	"github.com/pkg/errors"
)

// RemoveDuplicate removes duplicates entries in a list, keeping the first occurrence
func RemoveDuplicate(s []string) []string {
	keys := make(map[string]bool, len(s))
	result := make([]string, 0, len(s))
	for _, i := range s {
		if keys[i] {
			continue
		}
		keys[i] = true
		result = append(result, i)
	}
	return result
}

// ToHex returns the hexadecimal representation of the UTF-8 bytes of a domain
func ToHex(domain string) string {
	return hex.EncodeToString([]byte(domain))
}

// FromHex decodes a hexadecimal domain back to its UTF-8 string
func FromHex(hexdomain string) (string, error) {
	b, err := hex.DecodeString(hexdomain)
	if err != nil {
		return "", errors.Wrap(err, "domain is not hexadecimal")
	}
	if !utf8.Valid(b) {
		return "", errors.New("decoded domain is not valid UTF-8")
	}
	return string(b), nil
}

// ExtractHost returns the host part of an input that may be a bare domain or a URL
func ExtractHost(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") {
		return input
	}
	u, err := tld.Parse(input)
	if err != nil || u == nil {
		return input
	}
	return u.Hostname()
}
