package cache_test

import (
	"dnstwister/pkg/cache"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cache", func() {
	var alerted *cache.Cache

	BeforeEach(func() {
		alerted = cache.New(2)
	})

	Describe("StoreCache", func() {
		Describe("If cache under limit", func() {
			It("should store element", func() {
				alerted.StoreCache("exampel.com")
				alerted.StoreCache("examp1e.com")
				Expect(alerted.Slab).To(HaveLen(2))
				Expect(alerted.List).To(HaveLen(2))
				Expect(alerted.Counter).To(Equal(2))
			})
		})
		Describe("If cache exceeds limit", func() {
			It("should remove the oldest element", func() {
				alerted.StoreCache("exampel.com")
				alerted.StoreCache("examp1e.com")
				alerted.StoreCache("exanple.com")
				Expect(alerted.Slab).To(HaveLen(2))
				Expect(alerted.List).To(HaveLen(2))
				Expect(alerted.List[0]).To(Equal("examp1e.com"))
				Expect(alerted.InCache("exampel.com")).To(BeFalse())
			})
		})
		Describe("If element is stored twice", func() {
			It("should keep a single entry", func() {
				alerted.StoreCache("exampel.com")
				alerted.StoreCache("exampel.com")
				Expect(alerted.List).To(HaveLen(1))
			})
		})
	})

	Describe("InCache", func() {
		Describe("If element in cache", func() {
			It("should return true", func() {
				alerted.StoreCache("exampel.com")
				Expect(alerted.InCache("exampel.com")).To(BeTrue())
			})
		})
		Describe("If element not in cache", func() {
			It("should return false", func() {
				alerted.StoreCache("exampel.com")
				Expect(alerted.InCache("inexistant.com")).ToNot(BeTrue())
			})
		})
	})

	Describe("StoreIfAbsent", func() {
		It("should report only the first store", func() {
			Expect(alerted.StoreIfAbsent("exampel.com")).To(BeTrue())
			Expect(alerted.StoreIfAbsent("exampel.com")).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should empty the cache", func() {
			alerted.StoreCache("exampel.com")
			alerted.Reset()
			Expect(alerted.Slab).To(BeEmpty())
			Expect(alerted.Counter).To(BeZero())
		})
	})
})
