package homoglyph

import (
	"sort"
	"strings"

	"dnstwister/pkg/glyph"
)

// GetHomoglyphPatterns returns a list of strings where characters are replaced by
// look-alikes. For every window of the domain shorter than the domain itself, each
// character of the window is replaced by each of its glyphs at all of its positions
// inside the window.
func GetHomoglyphPatterns(domain string, glyphs glyph.Table) []string {
	results := []string{}
	runes := []rune(domain)

	// prev[p] is the previous position of the rune at p, -1 if none
	prev := make([]int, len(runes))
	positions := make(map[rune][]int)
	for p, c := range runes {
		prev[p] = -1
		if ps := positions[c]; len(ps) > 0 {
			prev[p] = ps[len(ps)-1]
		}
		positions[c] = append(positions[c], p)
	}

	// a window replacing c yields the same strings as any other window holding the
	// same first and last occurrence of c
	done := make(map[[2]int]struct{})
	seen := make(map[string]struct{})
	for ws := 1; ws < len(runes); ws++ {
		for i := 0; i+ws <= len(runes); i++ {
			for p := i; p < i+ws; p++ {
				c := runes[p]
				if prev[p] >= i || len(glyphs[c]) == 0 {
					continue
				}
				ps := positions[c]
				last := ps[sort.SearchInts(ps, i+ws)-1]
				key := [2]int{p, last}
				if _, ok := done[key]; ok {
					continue
				}
				done[key] = struct{}{}
				for _, g := range glyphs[c] {
					s := substitute(runes, c, g, p, last)
					if _, ok := seen[s]; ok {
						continue
					}
					seen[s] = struct{}{}
					results = append(results, s)
				}
			}
		}
	}
	return results
}

// substitute replaces c by g at every position between first and last
func substitute(runes []rune, c rune, g string, first, last int) string {
	var b strings.Builder
	b.Grow(len(runes) + len(g))
	b.WriteString(string(runes[:first]))
	for _, r := range runes[first : last+1] {
		if r == c {
			b.WriteString(g)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteString(string(runes[last+1:]))
	return b.String()
}
