package glyph_test

import (
	"strings"

	"dnstwister/pkg/domain"
	"dnstwister/pkg/glyph"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Glyph", func() {
	Describe("Default", func() {
		t := glyph.Default()
		It("should cover every letter but x", func() {
			Expect(t.Keys()).To(HaveLen(25))
			Expect(t).ToNot(HaveKey('x'))
			Expect(t['a']).To(HaveLen(12))
			Expect(t['e']).To(HaveLen(14))
			Expect(t['w']).To(HaveLen(9))
		})
		It("should never map a letter to itself nor repeat a glyph", func() {
			for _, k := range t.Keys() {
				seen := map[string]bool{}
				for _, g := range t[k] {
					Expect(strings.EqualFold(g, string(k))).To(BeFalse(), "%q in row %q", g, k)
					Expect(seen).ToNot(HaveKey(strings.ToLower(g)), "%q in row %q", g, k)
					seen[strings.ToLower(g)] = true
				}
			}
		})
		It("should only hold glyphs valid in a domain", func() {
			for _, k := range t.Keys() {
				for _, g := range t[k] {
					_, err := domain.Validate(g + ".com")
					Expect(err).ToNot(HaveOccurred(), "%q in row %q", g, k)
				}
			}
		})
	})

	Describe("New", func() {
		Describe("If rows are invalid", func() {
			It("should report every violation", func() {
				_, err := glyph.New(map[rune][]string{
					'a': {"A", "", "à", "à"},
					'e': {"É"},
				})
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("is the key"))
				Expect(err.Error()).To(ContainSubstring("is empty"))
				Expect(err.Error()).To(ContainSubstring("duplicates index 2"))
				Expect(err.Error()).To(ContainSubstring("is not lower case"))
			})
		})
		Describe("If glyphs only differ by case", func() {
			It("should report the duplicate", func() {
				_, err := glyph.New(map[rune][]string{'e': {"é", "É"}})
				Expect(err).To(MatchError(ContainSubstring("duplicates index 0")))
			})
		})
		Describe("If glyph is decomposed", func() {
			It("should reject it", func() {
				_, err := glyph.New(map[rune][]string{'a': {"a\u0300"}})
				Expect(err).To(MatchError(ContainSubstring("is not NFC")))
			})
		})
	})

	Describe("Skeleton", func() {
		It("should replace look-alikes by the letter they imitate", func() {
			Expect(glyph.Default().Skeleton("\u0117x\u00e0mple.com")).To(Equal("example.com"))
		})
		It("should leave ASCII untouched", func() {
			Expect(glyph.Default().Skeleton("rn-example.com")).To(Equal("rn-example.com"))
		})
	})
})
