package parcel

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stepper state machine", func() {
	var sc Scenario

	BeforeEach(func() {
		sc = DefaultScenario()
		sc.IceEnabled = true
	})

	Context("with ice physics enabled", func() {
		It("latches ice_active exactly once and never resets it", func() {
			st, err := NewStepper(sc)
			Expect(err).NotTo(HaveOccurred())

			transitions := 0
			prev := false
			for !st.Done() {
				s, err := st.Next()
				Expect(err).NotTo(HaveOccurred())
				if s.IceActive != prev {
					transitions++
					Expect(s.IceActive).To(BeTrue(), "latch reset at t=%g", s.Time)
				}
				prev = s.IceActive
			}
			Expect(transitions).To(Equal(1))
			Expect(st.Onset()).NotTo(BeNil())
		})

		It("records the onset at the first nucleating step", func() {
			st, err := NewStepper(sc)
			Expect(err).NotTo(HaveOccurred())

			var first *Sample
			for !st.Done() {
				s, err := st.Next()
				Expect(err).NotTo(HaveOccurred())
				if s.IceActive && first == nil {
					first = &s
				}
			}
			Expect(first).NotTo(BeNil())
			Expect(st.Onset().Time).To(Equal(first.Time))
			Expect(st.Onset().Temperature).To(Equal(first.T))
		})

		It("only grows qi after onset", func() {
			sim, err := New(sc)
			Expect(err).NotTo(HaveOccurred())
			res, err := sim.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			for _, s := range res.Samples {
				if s.Time < res.IceOnset.Time {
					Expect(s.Qi).To(BeZero())
				}
			}
			Expect(res.Samples[len(res.Samples)-1].Qi).To(BeNumerically(">", 0))
		})

		It("does not latch while the parcel stays warm", func() {
			sc.CoolingRate = 0
			sim, err := New(sc)
			Expect(err).NotTo(HaveOccurred())
			res, err := sim.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IceOnset).To(BeNil())
		})
	})

	Context("with ice physics disabled", func() {
		It("never evaluates the latch even below T50", func() {
			sc.IceEnabled = false
			sc.T0 = 250
			sim, err := New(sc)
			Expect(err).NotTo(HaveOccurred())
			res, err := sim.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IceOnset).To(BeNil())
			for _, s := range res.Samples {
				Expect(s.IceActive).To(BeFalse())
			}
		})
	})

	Context("saturation regimes", func() {
		It("toggles between subsaturated and supersaturated freely", func() {
			sc.IceEnabled = false
			sc.KRelax = 2.5
			sc.Dt = 1
			st, err := NewStepper(sc)
			Expect(err).NotTo(HaveOccurred())

			sawPositive, sawNegativeAfter := false, false
			for !st.Done() {
				s, err := st.Next()
				Expect(err).NotTo(HaveOccurred())
				if s.SPre > 0 {
					sawPositive = true
				}
				if sawPositive && s.SPre < 0 {
					sawNegativeAfter = true
				}
				Expect(s.E).To(BeNumerically(">=", 0))
			}
			Expect(sawPositive).To(BeTrue())
			Expect(sawNegativeAfter).To(BeTrue())
		})
	})
})
