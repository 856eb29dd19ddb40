package fuzzer

import (
	"dnstwister/pkg/addition"
	"dnstwister/pkg/bitsquatting"
	"dnstwister/pkg/domain"
	"dnstwister/pkg/glyph"
	"dnstwister/pkg/homoglyph"
	"dnstwister/pkg/hyphenation"
	"dnstwister/pkg/insertion"
	"dnstwister/pkg/keyboard"
	"dnstwister/pkg/model"
	"dnstwister/pkg/omission"
	"dnstwister/pkg/repetition"
	"dnstwister/pkg/replacement"
	"dnstwister/pkg/subdomain"
	"dnstwister/pkg/transposition"
	"dnstwister/pkg/various"
	"dnstwister/pkg/vowelswap"
)

// Tables holds the static data the strategies read
type Tables struct {
	Glyphs    glyph.Table
	Keyboards []keyboard.Layout
}

// DefaultTables returns the built-in glyphs and every built-in keyboard layout
func DefaultTables() Tables {
	return Tables{
		Glyphs:    glyph.Default(),
		Keyboards: keyboard.All(),
	}
}

// Fuzzer generates look-alike variants of a domain. It only reads its tables and can be
// shared between goroutines.
type Fuzzer struct {
	tables Tables
}

// New returns a Fuzzer using t
func New(t Tables) *Fuzzer {
	return &Fuzzer{tables: t}
}

type strategy struct {
	label    string
	patterns func(prefix string) []string
}

func (f *Fuzzer) strategies() []strategy {
	return []strategy{
		{model.Addition, addition.GetAdditionPatterns},
		{model.Bitsquatting, bitsquatting.GetBitsquattingPatterns},
		{model.Homoglyph, func(p string) []string { return homoglyph.GetHomoglyphPatterns(p, f.tables.Glyphs) }},
		{model.Hyphenation, hyphenation.GetHyphenationPatterns},
		{model.Insertion, func(p string) []string { return insertion.GetInsertionPatterns(p, f.tables.Keyboards) }},
		{model.Omission, omission.GetOmissionPatterns},
		{model.Repetition, repetition.GetRepetitionPatterns},
		{model.Replacement, func(p string) []string { return replacement.GetReplacementPatterns(p, f.tables.Keyboards) }},
		{model.Subdomain, subdomain.GetSubdomainPatterns},
		{model.Transposition, transposition.GetTranspositionPatterns},
		{model.VowelSwap, vowelswap.GetVowelSwapPatterns},
	}
}

// Generate returns the original domain labelled Original* followed by every valid,
// distinct variant. A variant keeps the label of the first strategy producing it.
func (f *Fuzzer) Generate(d *domain.Domain) []model.Variant {
	original := d.Unicode()
	prefix := d.Prefix()

	seen := map[string]struct{}{original: {}}
	variants := []model.Variant{{Domain: original, Fuzzer: model.Original}}
	add := func(label, candidate string) {
		if _, ok := seen[candidate]; ok {
			return
		}
		if _, err := domain.Validate(candidate); err != nil {
			return
		}
		seen[candidate] = struct{}{}
		variants = append(variants, model.Variant{Domain: candidate, Fuzzer: label})
	}

	for _, s := range f.strategies() {
		for _, p := range s.patterns(prefix) {
			add(s.label, p+"."+d.Suffix)
		}
	}
	for _, p := range various.GetVariousPatterns(prefix, d.Suffix, d.HasSubdomain()) {
		add(model.Various, p)
	}
	return variants
}

// Count returns how many variants each strategy contributed
func Count(variants []model.Variant) map[string]int {
	counts := make(map[string]int, len(model.Fuzzers))
	for _, v := range variants {
		counts[v.Fuzzer]++
	}
	return counts
}
