package harness_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/skidsim/harness"
)

var _ = Describe("Pattern", func() {
	Describe("Always and Never", func() {
		It("should be constant", func() {
			always := harness.Always()
			never := harness.Never()

			for tick := uint64(0); tick < 10; tick++ {
				Expect(always.Assert(tick)).To(BeTrue())
				Expect(never.Assert(tick)).To(BeFalse())
			}
		})
	})

	Describe("Bernoulli", func() {
		It("should be deterministic for a fixed seed", func() {
			a := harness.Bernoulli(0.5, 9)
			b := harness.Bernoulli(0.5, 9)

			for tick := uint64(0); tick < 100; tick++ {
				Expect(a.Assert(tick)).To(Equal(b.Assert(tick)))
			}
		})

		It("should follow the probability at the extremes", func() {
			zero := harness.Bernoulli(0, 1)
			one := harness.Bernoulli(1, 1)

			for tick := uint64(0); tick < 50; tick++ {
				Expect(zero.Assert(tick)).To(BeFalse())
				Expect(one.Assert(tick)).To(BeTrue())
			}
		})
	})

	Describe("Windows", func() {
		It("should invert the base level inside each window", func() {
			p := harness.Windows(true,
				harness.Window{From: 3, To: 5},
				harness.Window{From: 8, To: 9},
			)

			asserted := []bool{
				true, true, true, false, false,
				true, true, true, false, true,
			}
			for tick, want := range asserted {
				Expect(p.Assert(uint64(tick))).To(Equal(want),
					"tick %d", tick)
			}
		})
	})
})
