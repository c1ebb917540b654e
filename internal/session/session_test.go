package session

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hapticlab/teleop/internal/haptic"
)

var _ = Describe("Config", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = DefaultConfig()
	})

	It("accepts the default configuration", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("rejects an unknown scheme", func() {
		cfg.Scheme = "telepathy"
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("rejects non-positive dt and duration", func() {
		cfg.Dt = 0
		Expect(cfg.Validate()).NotTo(Succeed())

		cfg = DefaultConfig()
		cfg.Duration = -1
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("rejects a negative deadband threshold", func() {
		cfg.Deadband = -0.1
		Expect(cfg.Validate()).To(MatchError(haptic.ErrNegativeThreshold))
	})

	It("rejects a non-positive wave impedance", func() {
		cfg.Scheme = SchemeWAVE
		cfg.Impedance = 0
		Expect(cfg.Validate()).To(MatchError(haptic.ErrNonPositiveImpedance))
	})

	It("rejects a non-positive mu_max for the iss scheme", func() {
		cfg.Scheme = SchemeISS
		cfg.MuMax = 0
		Expect(cfg.Validate()).To(MatchError(haptic.ErrNonPositiveMuMax))
	})
})

var _ = Describe("Session", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.Dt = 0.001
		cfg.Duration = 0.1
	})

	run := func() *Result {
		s, err := New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		result, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	It("runs the configured number of steps", func() {
		result := run()
		Expect(result.Steps).To(Equal(100))
		Expect(result.Samples).To(HaveLen(100))
	})

	It("refuses to build from an invalid configuration", func() {
		cfg.Dim = 0
		_, err := New(cfg, nil)
		Expect(err).To(HaveOccurred())
	})

	It("honors context cancellation", func() {
		s, err := New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := s.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Steps).To(Equal(0))
	})

	It("stays at rest without operator input", func() {
		cfg.OperatorAmplitude = 0
		result := run()
		for _, smp := range result.Samples {
			Expect(smp.MasterPos.IsZero()).To(BeTrue())
			Expect(smp.SlaveForce.IsZero()).To(BeTrue())
			Expect(smp.MasterForce.IsZero()).To(BeTrue())
		}
	})

	It("suppresses reflected force updates with deadband compression", func() {
		cfg.Duration = 0.5
		cfg.Deadband = 0.1
		result := run()
		Expect(result.Suppressed).To(BeNumerically(">", 0))
		Expect(result.Suppressed).To(BeNumerically("<", result.Steps))
	})

	It("observes every sample through registered metrics", func() {
		m := &countingMetric{}
		s, err := New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		s.AddMetric(m)

		result, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.calls).To(Equal(result.Steps))
		Expect(result.Metrics).To(HaveKey("count"))
	})

	It("stops early when the callback returns false", func() {
		s, err := New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		seen := 0
		err = s.RunWithCallback(context.Background(), func(Sample) bool {
			seen++
			return seen < 10
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(10))
	})

	It("reports divergence as a session error", func() {
		cfg.Dt = 1.0
		cfg.Duration = 100
		cfg.KP = 1e8
		cfg.MasterMass = 1e-3
		cfg.SlaveMass = 1e-3

		s, err := New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run(context.Background())
		Expect(err).To(MatchError(ErrDiverged))

		var serr *SessionError
		Expect(errors.As(err, &serr)).To(BeTrue())
	})

	DescribeTable("keeps every scheme finite under channel delay",
		func(scheme Scheme, delay int) {
			cfg.Scheme = scheme
			cfg.Delay = delay
			cfg.Duration = 0.5
			result := run()
			for _, smp := range result.Samples {
				Expect(smp.MasterForce.IsValid()).To(BeTrue())
				Expect(smp.SlavePos.IsValid()).To(BeTrue())
				Expect(smp.Alpha).To(BeNumerically(">=", 0))
				Expect(math.IsNaN(smp.Energy)).To(BeFalse())
			}
		},
		Entry("direct, no delay", SchemeDirect, 0),
		Entry("direct, 20 ticks", SchemeDirect, 20),
		Entry("tdpa, 20 ticks", SchemeTDPA, 20),
		Entry("wave, 10 ticks", SchemeWAVE, 10),
		Entry("iss, 5 ticks", SchemeISS, 5),
	)
})

type countingMetric struct {
	calls int
}

func (m *countingMetric) Name() string   { return "count" }
func (m *countingMetric) Observe(Sample) { m.calls++ }
func (m *countingMetric) Value() float64 { return float64(m.calls) }
func (m *countingMetric) Reset()         { m.calls = 0 }
