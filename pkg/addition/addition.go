package addition

import (
	"dnstwister/helper"
)

// GetAdditionPatterns returns a list of strings with a letter appended
func GetAdditionPatterns(domain string) []string {
	results := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		results = append(results, domain+string(c))
	}
	return helper.RemoveDuplicate(results)
}
