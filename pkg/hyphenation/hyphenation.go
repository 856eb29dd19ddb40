package hyphenation

import (
	"fmt"

	"dnstwister/helper"
)

// GetHyphenationPatterns returns a list of strings with a hyphen between two characters
func GetHyphenationPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)
	for i := 1; i < len(runes); i++ {
		results = append(results, fmt.Sprintf("%s-%s", string(runes[:i]), string(runes[i:])))
	}
	return helper.RemoveDuplicate(results)
}
