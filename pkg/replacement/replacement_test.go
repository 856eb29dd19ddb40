package replacement_test

import (
	"dnstwister/pkg/keyboard"
	"dnstwister/pkg/replacement"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GetReplacementPatterns", func() {
	Describe("If a single layout is used", func() {
		It("should replace each character by its neighbours", func() {
			result := replacement.GetReplacementPatterns("abc", []keyboard.Layout{keyboard.QWERTY})
			Expect(result).To(Equal([]string{
				"qbc", "wbc", "sbc", "zbc",
				"avc", "agc", "ahc", "anc",
				"abx", "abd", "abf", "abv",
			}))
		})
	})
	Describe("If several layouts are used", func() {
		It("should merge their neighbours", func() {
			result := replacement.GetReplacementPatterns("a", keyboard.All())
			Expect(result).To(Equal([]string{"q", "w", "s", "z", "y", "2", "1"}))
		})
	})
})
