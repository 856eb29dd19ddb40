package subdomain

import (
	"fmt"

	"dnstwister/helper"
)

// GetSubdomainPatterns returns a list of strings split in two labels by a dot, never
// next to an existing hyphen or dot
func GetSubdomainPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)
	for i := 1; i < len(runes); i++ {
		if separator(runes[i]) || separator(runes[i-1]) {
			continue
		}
		results = append(results, fmt.Sprintf("%s.%s", string(runes[:i]), string(runes[i:])))
	}
	return helper.RemoveDuplicate(results)
}

func separator(r rune) bool {
	return r == '-' || r == '.'
}
