package repetition

import (
	"fmt"
	"unicode"

	"dnstwister/helper"
)

// GetRepetitionPatterns returns a list of strings with a doubled letter or digit
func GetRepetitionPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)
	for i, c := range runes {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			results = append(results, fmt.Sprintf("%s%c%c%s", string(runes[:i]), c, c, string(runes[i+1:])))
		}
	}
	return helper.RemoveDuplicate(results)
}
