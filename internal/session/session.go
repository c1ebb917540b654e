package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hapticlab/teleop/internal/haptic"
)

// Config holds every knob of a bilateral session.
type Config struct {
	Scheme   Scheme
	Dim      int
	Dt       float64
	Duration float64
	Delay    int // channel latency, in ticks, each direction

	Impedance float64 // wave impedance b (wave scheme)
	Tau       float64 // ISS time constant (iss scheme)
	MuMax     float64 // ISS force gradient bound (iss scheme)

	KP, KI, KD float64 // slave tracking gains

	Deadband float64 // relative deadband threshold; 0 disables compression

	MasterMass    float64
	MasterDamping float64

	SlaveMass      float64
	SlaveStiffness float64
	SlaveDamping   float64

	OperatorAmplitude float64
	OperatorFrequency float64

	ValidateState bool
}

// DefaultConfig returns a one-dimensional soft-contact scenario.
func DefaultConfig() Config {
	return Config{
		Scheme:            SchemeDirect,
		Dim:               1,
		Dt:                0.001,
		Duration:          5.0,
		Delay:             0,
		Impedance:         10.0,
		Tau:               0.005,
		MuMax:             500.0,
		KP:                120.0,
		KI:                10.0,
		KD:                8.0,
		Deadband:          0,
		MasterMass:        0.5,
		MasterDamping:     0.2,
		SlaveMass:         0.5,
		SlaveStiffness:    200.0,
		SlaveDamping:      5.0,
		OperatorAmplitude: 4.0,
		OperatorFrequency: 0.5,
		ValidateState:     true,
	}
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if _, err := ParseScheme(string(c.Scheme)); err != nil {
		return err
	}
	if c.Dim < 1 {
		return fmt.Errorf("session: dim must be at least 1, got %d", c.Dim)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("session: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("session: duration must be positive, got %f", c.Duration)
	}
	if c.Delay < 0 {
		return fmt.Errorf("session: delay must be non-negative, got %d", c.Delay)
	}
	if c.MasterMass <= 0 || c.SlaveMass <= 0 {
		return fmt.Errorf("session: device masses must be positive")
	}
	if c.Deadband < 0 {
		return haptic.ErrNegativeThreshold
	}
	if c.Scheme == SchemeWAVE && c.Impedance <= 0 {
		return haptic.ErrNonPositiveImpedance
	}
	if c.Scheme == SchemeISS {
		if c.MuMax <= 0 {
			return haptic.ErrNonPositiveMuMax
		}
		if c.Tau < 0 {
			return haptic.ErrNegativeTau
		}
	}
	return nil
}

// Session runs the bilateral control loop described by its Config.
type Session struct {
	cfg       Config
	log       *slog.Logger
	metrics   []Metric
	observers []Observer
}

// New creates a session. A nil logger falls back to slog.Default.
func New(cfg Config, log *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Session{cfg: cfg, log: log}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run executes the configured session to completion, recording every
// sample. The partial result is returned alongside the error when the
// context is canceled or the loop diverges.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	steps := int(s.cfg.Duration / s.cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Info("session started",
		"scheme", s.cfg.Scheme,
		"dim", s.cfg.Dim,
		"dt", s.cfg.Dt,
		"steps", steps,
		"delay", s.cfg.Delay,
	)

	err := s.loop(ctx, steps, func(smp Sample) bool {
		for _, m := range s.metrics {
			m.Observe(smp)
		}
		for _, o := range s.observers {
			o.OnStep(smp)
		}
		result.Samples = append(result.Samples, smp)
		result.Steps++
		if smp.Suppressed {
			result.Suppressed++
		}
		return true
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info("session finished",
		"steps", result.Steps,
		"suppressed", result.Suppressed,
		"err", err,
	)
	return result, err
}

// RunWithCallback executes the session, handing each sample to cb instead
// of recording. Returning false from cb stops the run cleanly.
func (s *Session) RunWithCallback(ctx context.Context, cb func(Sample) bool) error {
	steps := int(s.cfg.Duration / s.cfg.Dt)
	return s.loop(ctx, steps, cb)
}

func (s *Session) loop(ctx context.Context, steps int, emit func(Sample) bool) error {
	cfg := s.cfg
	dim := cfg.Dim

	master := NewDevice(dim, cfg.MasterMass, 0, cfg.MasterDamping)
	slave := NewDevice(dim, cfg.SlaveMass, cfg.SlaveStiffness, cfg.SlaveDamping)
	operator := NewOperator(dim, cfg.OperatorAmplitude, cfg.OperatorFrequency)
	tracker := haptic.NewPID(dim, cfg.KP, cfg.KI, cfg.KD)

	fwdPos := NewDelayLine(cfg.Delay, dim)
	fwdVel := NewDelayLine(cfg.Delay, dim)
	back := NewDelayLine(cfg.Delay, dim)

	var (
		detector *haptic.DeadbandDetector[float64]
		tdpa     *haptic.TDPA[float64]
		iss      *haptic.ISS[float64]
		wave     *haptic.WAVE[float64]
		err      error
	)
	if cfg.Deadband > 0 {
		detector, err = haptic.NewDeadbandDetector(cfg.Deadband, haptic.NewVec[float64](dim))
		if err != nil {
			return err
		}
	}
	switch cfg.Scheme {
	case SchemeTDPA:
		tdpa = haptic.NewTDPA[float64](dim)
	case SchemeISS:
		iss, err = haptic.NewISS(dim, cfg.Tau, cfg.MuMax)
		if err != nil {
			return err
		}
	case SchemeWAVE:
		wave, err = haptic.NewWAVE(cfg.Impedance)
		if err != nil {
			return err
		}
	}

	var waveFwd *DelayLine
	if wave != nil {
		waveFwd = NewDelayLine(cfg.Delay, dim)
	}

	feedback := haptic.NewVec[float64](dim)
	velOut := haptic.NewVec[float64](dim) // master velocity as transmitted

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt

		// Master -> slave: motion command through the channel.
		mPos := fwdPos.Push(master.Pos())
		velRef := fwdVel.Push(velOut)

		var uM haptic.Vec[float64]
		if wave != nil {
			// Master encodes its motion as the incoming wave; the slave
			// recovers its velocity reference from the delayed wave.
			uM = wave.UM(feedback, master.Vel())
			uS := waveFwd.Push(uM)
			velRef = wave.VelS(uS, slave.Vel())
		}

		// Slave tracks the delayed master motion against its environment.
		cmd := tracker.CalculateForce(mPos, slave.Pos(), velRef, slave.Vel(), cfg.Dt)
		slave.Step(cmd, cfg.Dt)
		envForce := slave.Reaction()

		// Deadband compression of the reflected force stream: suppressed
		// updates retransmit the retained sample.
		suppressed := false
		txForce := envForce
		if detector != nil {
			if detector.IsInDeadband(envForce) {
				suppressed = true
				txForce = detector.PrevVals()
			}
		}

		// Slave -> master: reflected force through the channel, with the
		// scheme's stability measure applied at the master boundary.
		var energy, alpha float64
		switch {
		case tdpa != nil:
			raw := back.Push(txForce)
			feedback = tdpa.CalculateForce(master.Vel(), raw)
			energy = tdpa.Energy()
			alpha = tdpa.Alpha()
		case iss != nil:
			raw := back.Push(txForce)
			// Velocity compensation reads the previous retained force, so
			// it runs before the force update for this tick. The
			// compensated velocity is what the slave gets next tick.
			velOut = iss.CalculateVel(master.Vel(), raw, cfg.Dt)
			feedback = iss.CalculateForce(raw, cfg.Dt)
		case wave != nil:
			vS := wave.VS(txForce, slave.Vel())
			vM := back.Push(vS)
			feedback = wave.ForceM(uM, vM)
		default:
			feedback = back.Push(txForce)
		}

		master.Step(operator.Force(t).Sub(feedback), cfg.Dt)
		if iss == nil {
			velOut = master.Vel()
		}

		smp := Sample{
			T:           t,
			MasterPos:   master.Pos(),
			MasterVel:   master.Vel(),
			MasterForce: feedback.Clone(),
			SlavePos:    slave.Pos(),
			SlaveVel:    slave.Vel(),
			SlaveForce:  envForce.Clone(),
			Energy:      energy,
			Alpha:       alpha,
			Suppressed:  suppressed,
		}

		if cfg.ValidateState && (!smp.MasterPos.IsValid() || !smp.SlavePos.IsValid()) {
			return &SessionError{Step: i, Time: t, Wrapped: ErrDiverged}
		}

		if !emit(smp) {
			return nil
		}
	}
	return nil
}
