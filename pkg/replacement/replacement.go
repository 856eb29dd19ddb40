package replacement

import (
	"fmt"

	"dnstwister/helper"
	"dnstwister/pkg/keyboard"
)

// GetReplacementPatterns returns a list of strings with a character replaced by a
// neighbouring key
func GetReplacementPatterns(domain string, layouts []keyboard.Layout) []string {
	results := []string{}
	runes := []rune(domain)
	for i, c := range runes {
		for _, l := range layouts {
			keys, _ := l.Adjacent(c)
			for _, k := range keys {
				results = append(results, fmt.Sprintf("%s%c%s", string(runes[:i]), k, string(runes[i+1:])))
			}
		}
	}
	return helper.RemoveDuplicate(results)
}
