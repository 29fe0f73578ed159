package decoupler_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/skidsim/decoupler"
	"github.com/sarchlab/skidsim/signal"
)

var _ = Describe("Decoupler", func() {
	const width = 16

	var d *decoupler.Decoupler

	BeforeEach(func() {
		d = decoupler.New(width)
	})

	Describe("New", func() {
		It("should come up in the hard-reset state", func() {
			Expect(d.RxReady()).To(BeTrue())
			Expect(d.TxValid()).To(BeFalse())
			Expect(d.Resident()).To(Equal(0))
		})
	})

	Describe("hard reset", func() {
		It("should force the reset state immediately on assertion", func() {
			d.Tick(decoupler.Inputs{
				RxValid: true,
				RxData:  signal.FromUint64(width, 0x1234),
				TxReady: false,
			})
			Expect(d.TxValid()).To(BeTrue())

			d.SetReset(true)

			Expect(d.TxValid()).To(BeFalse())
			Expect(d.RxReady()).To(BeTrue())
			Expect(d.TxData().IsZero()).To(BeTrue())
		})

		It("should hold the reset state while the line is asserted", func() {
			d.SetReset(true)

			for i := 0; i < 5; i++ {
				d.Tick(decoupler.Inputs{
					RxValid: true,
					RxData:  signal.FromUint64(width, 0xFFFF),
					TxReady: true,
				})
				Expect(d.TxValid()).To(BeFalse())
				Expect(d.RxReady()).To(BeTrue())
			}
		})

		It("should resume normal operation after release", func() {
			d.SetReset(true)
			d.Tick(decoupler.Inputs{})
			d.SetReset(false)

			word := signal.FromUint64(width, 0xBEEF)
			d.Tick(decoupler.Inputs{
				RxValid: true, RxData: word, TxReady: true,
			})

			Expect(d.TxValid()).To(BeTrue())
			Expect(d.TxData().Equal(word)).To(BeTrue())
		})
	})

	Describe("steady-state throughput", func() {
		It("should move one word per tick once the stream is flowing",
			func() {
				for tick := 0; tick < 100; tick++ {
					Expect(d.RxReady()).To(BeTrue())

					d.Tick(decoupler.Inputs{
						RxValid: true,
						RxData:  signal.FromUint64(width, uint64(tick)),
						TxReady: true,
					})

					Expect(d.TxValid()).To(BeTrue())
				}

				stats := d.Stats()
				Expect(stats.Accepted).To(Equal(uint64(100)))
				Expect(stats.Emitted).To(Equal(uint64(99)),
					"the first word spends one tick in the register stage")
				Expect(stats.SkidCaptures).To(BeZero())
			})
	})

	Describe("backpressure", func() {
		It("should never overwrite an accepted word", func() {
			first := signal.FromUint64(width, 0xA0A0)
			second := signal.FromUint64(width, 0xB1B1)

			d.Tick(decoupler.Inputs{RxValid: true, RxData: first})
			d.Tick(decoupler.Inputs{RxValid: true, RxData: second})

			for i := 0; i < 10; i++ {
				Expect(d.RxReady()).To(BeFalse())
				Expect(d.TxData().Equal(first)).To(BeTrue())
				Expect(d.Resident()).To(Equal(2))

				d.Tick(decoupler.Inputs{
					RxValid: true,
					RxData:  signal.FromUint64(width, uint64(i)),
				})
			}

			// Drain: first comes out, then the parked second.
			d.Tick(decoupler.Inputs{TxReady: true})
			Expect(d.TxData().Equal(second)).To(BeTrue())
			Expect(d.TxValid()).To(BeTrue())

			d.Tick(decoupler.Inputs{TxReady: true})
			Expect(d.TxValid()).To(BeFalse())
		})
	})

	Describe("synchronous clear", func() {
		It("should drop the pending words in one tick", func() {
			d.Tick(decoupler.Inputs{
				RxValid: true,
				RxData:  signal.FromUint64(width, 1),
				TxReady: false,
			})
			d.Tick(decoupler.Inputs{
				RxValid: true,
				RxData:  signal.FromUint64(width, 2),
				TxReady: false,
			})
			Expect(d.Resident()).To(Equal(2))

			d.Tick(decoupler.Inputs{Clear: true})

			Expect(d.Resident()).To(Equal(0))
			Expect(d.TxValid()).To(BeFalse())
			Expect(d.RxReady()).To(BeTrue())
			Expect(d.Stats().Clears).To(Equal(uint64(1)))
		})
	})

	Describe("conservation", func() {
		It("should deliver every accepted word once, in order", func() {
			rng := rand.New(rand.NewSource(42))

			var sent []signal.Word
			var received []signal.Word
			var offered signal.Word
			holding := false

			for tick := 0; tick < 20000; tick++ {
				rxValid := holding || rng.Float64() < 0.7
				if rxValid && !holding {
					offered = signal.Random(width, rng)
					holding = true
				}

				txReady := rng.Float64() < 0.6

				if rxValid && d.RxReady() {
					sent = append(sent, offered)
					holding = false
				}

				if d.TxValid() && txReady {
					received = append(received, d.TxData())
				}

				in := decoupler.Inputs{
					RxValid: rxValid,
					TxReady: txReady,
				}
				if rxValid {
					in.RxData = offered
				}

				d.Tick(in)

				Expect(d.Resident()).To(BeNumerically("<=", 2))
				if d.State().SkidActive {
					Expect(d.TxValid()).To(BeTrue())
				}
			}

			// Drain whatever is still resident.
			for d.Resident() > 0 {
				if d.TxValid() {
					received = append(received, d.TxData())
				}
				d.Tick(decoupler.Inputs{TxReady: true})
			}

			Expect(len(received)).To(Equal(len(sent)))
			for i := range sent {
				Expect(received[i].Equal(sent[i])).To(BeTrue())
			}
		})
	})
})
