package bitsquatting

import (
	"fmt"

	"dnstwister/helper"
)

var masks = []rune{1, 2, 4, 8, 16, 32, 64, 128}

// GetBitsquattingPatterns returns a list of strings where one character has a single
// bit flipped, keeping only results that are lower case letters, digits or hyphens
func GetBitsquattingPatterns(domain string) []string {
	results := []string{}
	runes := []rune(domain)

	for i, c := range runes {
		for _, m := range masks {
			b := c ^ m
			if (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || b == '-' {
				results = append(results, fmt.Sprintf("%s%c%s", string(runes[:i]), b, string(runes[i+1:])))
			}
		}
	}
	return helper.RemoveDuplicate(results)
}
