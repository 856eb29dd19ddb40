package various

import (
	"fmt"
	"strings"

	"dnstwister/helper"
)

// GetVariousPatterns returns complete domains mixing the prefix with its suffix and
// common web prefixes. prefix holds every label before suffix.
func GetVariousPatterns(prefix, suffix string, hasSubdomain bool) []string {
	results := []string{}
	if i := strings.LastIndexByte(suffix, '.'); i >= 0 {
		results = append(results,
			fmt.Sprintf("%s.%s", prefix, suffix[i+1:]),
			prefix+suffix,
		)
	} else {
		results = append(results, fmt.Sprintf("%s%s.%s", prefix, suffix, suffix))
		if suffix != "com" {
			results = append(results, fmt.Sprintf("%s-%s.com", prefix, suffix))
		}
	}
	if !hasSubdomain {
		for _, p := range []string{"ww", "www", "www-"} {
			results = append(results, fmt.Sprintf("%s%s.%s", p, prefix, suffix))
		}
	}
	return helper.RemoveDuplicate(results)
}
