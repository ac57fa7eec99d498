package ratelimit_test

import (
	"time"

	"github.com/deepscout-ai/deepscout/core/ratelimit"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SlidingWindow", func() {
	var (
		clock  time.Time
		window *ratelimit.SlidingWindow
	)

	BeforeEach(func() {
		clock = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		window = ratelimit.NewSlidingWindow(10, 60*time.Second,
			ratelimit.WithClock(func() time.Time { return clock }))
	})

	It("admits up to the limit within one window", func() {
		for i := 0; i < 10; i++ {
			_, ok := window.Allow()
			Expect(ok).To(BeTrue(), "call %d should be admitted", i)
		}
	})

	It("rejects the call after the limit is reached", func() {
		for i := 0; i < 10; i++ {
			_, ok := window.Allow()
			Expect(ok).To(BeTrue())
		}
		wait, ok := window.Allow()
		Expect(ok).To(BeFalse())
		Expect(wait).To(Equal(61 * time.Second))
	})

	It("computes the retry-after from the oldest recorded call", func() {
		for i := 0; i < 10; i++ {
			_, ok := window.Allow()
			Expect(ok).To(BeTrue())
			clock = clock.Add(time.Second)
		}
		// Oldest call is 10s old by now.
		wait, ok := window.Allow()
		Expect(ok).To(BeFalse())
		Expect(wait).To(Equal(51 * time.Second))
	})

	It("admits again once the oldest call slides out of the window", func() {
		for i := 0; i < 10; i++ {
			_, ok := window.Allow()
			Expect(ok).To(BeTrue())
		}
		_, ok := window.Allow()
		Expect(ok).To(BeFalse())

		clock = clock.Add(60*time.Second + time.Millisecond)
		_, ok = window.Allow()
		Expect(ok).To(BeTrue())
	})

	It("retains a timestamp exactly at the window boundary", func() {
		for i := 0; i < 10; i++ {
			_, ok := window.Allow()
			Expect(ok).To(BeTrue())
		}
		clock = clock.Add(60 * time.Second)
		_, ok := window.Allow()
		Expect(ok).To(BeFalse())
	})

	It("is shared state, not per-caller", func() {
		for i := 0; i < 10; i++ {
			window.Allow()
		}
		// A "different caller" hits the same window.
		_, ok := window.Allow()
		Expect(ok).To(BeFalse())
	})
})
