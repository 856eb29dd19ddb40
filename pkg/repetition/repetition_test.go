package repetition_test

import (
	"dnstwister/pkg/repetition"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GetRepetitionPatterns", func() {
	It("should double letters and digits", func() {
		Expect(repetition.GetRepetitionPatterns("a-1")).To(Equal([]string{"aa-1", "a-11"}))
	})
	It("should double non-ASCII letters", func() {
		Expect(repetition.GetRepetitionPatterns("ä")).To(Equal([]string{"ää"}))
	})
})
