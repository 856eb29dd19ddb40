package insertion_test

import (
	"dnstwister/pkg/insertion"
	"dnstwister/pkg/keyboard"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GetInsertionPatterns", func() {
	Describe("If a single layout is used", func() {
		It("should insert neighbours around every character but the first", func() {
			result := insertion.GetInsertionPatterns("abc", []keyboard.Layout{keyboard.QWERTY})
			Expect(result).To(Equal([]string{
				"avbc", "abvc", "agbc", "abgc", "ahbc", "abhc", "anbc", "abnc",
				"abxc", "abcx", "abdc", "abcd", "abfc", "abcf", "abcv",
			}))
		})
	})
	Describe("If no layout knows a character", func() {
		It("should skip it", func() {
			Expect(insertion.GetInsertionPatterns("a-", keyboard.All())).To(BeEmpty())
		})
	})
})
