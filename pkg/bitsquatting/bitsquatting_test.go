package bitsquatting_test

import (
	"dnstwister/pkg/bitsquatting"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GetBitsquattingPatterns", func() {
	Describe("If domain is ASCII", func() {
		It("should flip one bit at a time", func() {
			result := bitsquatting.GetBitsquattingPatterns("abc")
			Expect(result).To(Equal([]string{
				"cbc", "ebc", "ibc", "qbc",
				"acc", "afc", "ajc", "arc",
				"abb", "aba", "abg", "abk", "abs",
			}))
		})
	})
	Describe("If domain has multi-byte characters", func() {
		It("should flip bits of whole characters", func() {
			result := bitsquatting.GetBitsquattingPatterns("äa")
			Expect(result).To(Equal([]string{"da", "äc", "äe", "äi", "äq"}))
		})
	})
})
