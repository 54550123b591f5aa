package ladder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

var _ = Describe("Ladder", func() {
	DescribeTable("initial condition",
		func(stages int, voltage float64) {
			l, err := ladder.New(stages, voltage)
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Len()).To(Equal(1))

			s, err := l.Snapshot(0, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Upper).To(HaveLen(stages + 1))
			Expect(s.Lower).To(HaveLen(stages))
			Expect(s.Upper[0]).To(Equal(voltage))
			Expect(s.Upper[1:]).To(HaveEach(0.0))
			Expect(s.Lower).To(HaveEach(0.0))
		},
		Entry("single stage", 1, 1.0),
		Entry("two stages", 2, 5.0),
		Entry("tall ladder", 10, 0.25),
	)

	DescribeTable("history grows by one per step",
		func(stages, steps int) {
			l, _ := ladder.New(stages, 1.0)
			l.Advance(steps)
			Expect(l.Len()).To(Equal(1 + steps))
		},
		Entry("no steps", 3, 0),
		Entry("one step", 3, 1),
		Entry("many steps", 5, 250),
	)

	Describe("switch phase", func() {
		It("couples stage 0 to node 0 and then node 1", func() {
			s := ladder.State{Upper: []float64{4, 2, 0}, Lower: []float64{0, 0}}

			ladder.Step(&s, 1.0, ladder.Parity(0))
			Expect(s.Lower[0]).To(Equal(s.Lower[1] + 1.0))
			Expect(s.Upper[1]).To(Equal(1.0))

			before := s.Clone()
			ladder.Step(&s, 1.0, ladder.Parity(1))
			mean := (before.Upper[1] + before.Lower[0]) / 2
			Expect(s.Lower[0]).To(Equal(mean))
			Expect(s.Upper[1]).To(Equal(mean))
		})

		It("grounds the output node after every even step", func() {
			l, _ := ladder.New(4, 1.0)
			for k := 0; k < 40; k++ {
				step := l.AdvanceOne()
				if ladder.Parity(step-1) == 0 {
					s, _ := l.Snapshot(step, false)
					Expect(s.Upper[4]).To(BeZero())
				}
			}
		})
	})

	Describe("sum voltage", func() {
		It("stays within the ceiling and converges to it", func() {
			l, _ := ladder.New(4, 2.0)
			l.Advance(1500)

			for step := 0; step < l.Len(); step++ {
				v, err := l.SumVoltage(step)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(BeNumerically(">=", 0))
				Expect(v).To(BeNumerically("<=", l.Ceiling()+1e-9))
			}
			final, _ := l.SumVoltage(l.Len() - 1)
			Expect(final).To(BeNumerically("~", l.Ceiling(), 1e-6))
		})
	})

	Describe("range errors", func() {
		var l *ladder.Ladder

		BeforeEach(func() {
			l, _ = ladder.New(2, 1.0)
			l.Advance(3)
		})

		It("rejects negative steps for sum voltage", func() {
			_, err := l.SumVoltage(-1)
			Expect(err).To(MatchError(ladder.ErrOutOfRange))
		})

		It("rejects a stage past the top", func() {
			_, err := l.StageVoltage(1, l.Stages()+1, false)
			Expect(err).To(MatchError(ladder.ErrOutOfRange))
		})

		It("rejects a history step equal to its length", func() {
			_, err := l.History().Get(l.Len())
			Expect(err).To(MatchError(ladder.ErrOutOfRange))
		})

		It("leaves history untouched after a failed query", func() {
			before := l.Current()
			_, _ = l.StageVoltage(99, 1, false)
			Expect(l.Len()).To(Equal(4))
			Expect(l.Current().Equal(before)).To(BeTrue())
		})
	})

	It("keeps snapshots independent of the live state", func() {
		l, _ := ladder.New(3, 1.0)
		first, _ := l.Snapshot(0, false)
		l.Advance(10)
		again, _ := l.Snapshot(0, false)
		Expect(again.Equal(first)).To(BeTrue())
	})
})
