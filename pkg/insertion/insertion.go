package insertion

import (
	"fmt"

	"dnstwister/helper"
	"dnstwister/pkg/keyboard"
)

// GetInsertionPatterns returns a list of strings with a neighbouring key typed just
// before or just after a character. The first character is left alone.
func GetInsertionPatterns(domain string, layouts []keyboard.Layout) []string {
	results := []string{}
	runes := []rune(domain)

	for i := 1; i < len(runes); i++ {
		pre, c, post := string(runes[:i]), runes[i], string(runes[i+1:])
		for _, l := range layouts {
			keys, ok := l.Adjacent(c)
			if !ok {
				continue
			}
			for _, k := range keys {
				results = append(results,
					fmt.Sprintf("%s%c%c%s", pre, k, c, post),
					fmt.Sprintf("%s%c%c%s", pre, c, k, post),
				)
			}
		}
	}
	return helper.RemoveDuplicate(results)
}
