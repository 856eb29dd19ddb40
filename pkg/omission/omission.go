package omission

import (
	"fmt"
	"strings"

	"dnstwister/helper"
)

// GetOmissionPatterns returns a list of strings with missing letters, plus the string
// with every run of a repeated character collapsed to one
func GetOmissionPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)
	for i := range runes {
		results = append(results, fmt.Sprintf("%s%s", string(runes[:i]), string(runes[i+1:])))
	}
	if c := collapse(runes); c != domain {
		results = append(results, c)
	}
	return helper.RemoveDuplicate(results)
}

func collapse(runes []rune) string {
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && runes[i-1] == r {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
