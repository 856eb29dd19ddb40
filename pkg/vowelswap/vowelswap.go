package vowelswap

import (
	"fmt"

	"dnstwister/helper"
)

var vowels = []rune{'a', 'e', 'i', 'o', 'u'}

// GetVowelSwapPatterns return a list of strings with a vowel replaced by another one
func GetVowelSwapPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)

	for i := range runes {
		switch runes[i] {
		case 'a', 'e', 'i', 'o', 'u':
			for _, v := range vowels {
				if runes[i] != v {
					results = append(results, fmt.Sprintf("%s%c%s", string(runes[:i]), v, string(runes[i+1:])))
				}
			}
		default:
		}
	}
	return helper.RemoveDuplicate(results)
}
