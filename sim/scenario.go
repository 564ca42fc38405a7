// Package sim drives the firmware images on the simulated board: timed
// YAML scenarios against the application, and image loading through the
// bootloader protocol.
package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/omzlo/pivoyager-firmware/platform"
)

var (
	ErrStepOrder   = errors.New("sim: steps must be in time order")
	ErrBadStep     = errors.New("sim: step needs exactly one action")
	ErrBadLevel    = errors.New("sim: pin level must be high or low")
	ErrExpectation = errors.New("sim: expectation failed")
)

const DefaultStart = "2030-01-01T00:00:00Z"

// Scenario is a timed script against the application firmware.
type Scenario struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"` // RFC 3339 calendar at t=0
	VBat  uint16 `yaml:"vbat"`
	Until uint32 `yaml:"until"` // ms to run after the last step
	Steps []Step `yaml:"steps"`

	ExpectStandby *bool `yaml:"expect_standby"`
}

// Step happens at At ms. Exactly one action field is set.
type Step struct {
	At      uint32   `yaml:"at"`
	Pin     *PinStep `yaml:"pin"`
	Write   *Access  `yaml:"write"`
	Read    *Access  `yaml:"read"`
	Expect  *Access  `yaml:"expect"`
	Console string   `yaml:"console"`
}

type PinStep struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// Access addresses the register file. Bytes is the payload for write and
// expect; Len the count for read.
type Access struct {
	Index uint8   `yaml:"index"`
	Bytes []uint8 `yaml:"bytes"`
	Len   int     `yaml:"len"`
}

// ReadResult is one read step's outcome.
type ReadResult struct {
	At    uint32
	Index uint8
	Bytes []byte
}

// Report summarises a run.
type Report struct {
	Reads     []ReadResult
	Failures  []string
	Standby   bool
	StandbyAt uint32
	EndedAt   uint32
}

// Load parses and validates a scenario.
func Load(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("sim: parse scenario: %w", err)
	}
	if sc.Start == "" {
		sc.Start = DefaultStart
	}
	if _, err := time.Parse(time.RFC3339, sc.Start); err != nil {
		return nil, fmt.Errorf("sim: start: %w", err)
	}
	var last uint32
	for i, st := range sc.Steps {
		if st.At < last {
			return nil, fmt.Errorf("step %d: %w", i, ErrStepOrder)
		}
		last = st.At
		if st.actions() != 1 {
			return nil, fmt.Errorf("step %d: %w", i, ErrBadStep)
		}
		if st.Pin != nil && st.Pin.Level != "high" && st.Pin.Level != "low" {
			return nil, fmt.Errorf("step %d: %w", i, ErrBadLevel)
		}
	}
	return &sc, nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{st.Pin != nil, st.Write != nil, st.Read != nil, st.Expect != nil, st.Console != ""} {
		if set {
			n++
		}
	}
	return n
}

// StartSeconds is the scenario's calendar start as epoch seconds.
func (sc *Scenario) StartSeconds() uint32 {
	t, _ := time.Parse(time.RFC3339, sc.Start)
	return uint32(t.Unix())
}

// Run executes sc on a fresh simulated board. Steps after standby are
// skipped. Failed expectations are listed in the report and reported as
// ErrExpectation.
func Run(sc *Scenario, log io.Writer) (*Report, error) {
	s := platform.NewSim(sc.StartSeconds(), log)
	if sc.VBat != 0 {
		s.ADC.VBat = sc.VBat
	}
	if err := s.Start(); err != nil {
		return nil, err
	}

	rep := &Report{}
	var last uint32
	for _, st := range sc.Steps {
		s.RunTo(st.At)
		if s.Asleep() {
			break
		}
		if err := apply(s, st, rep); err != nil {
			return nil, err
		}
		last = st.At
	}
	s.RunTo(last + sc.Until)
	s.Console.Flush()

	rep.EndedAt = s.Clock.MS
	rep.Standby = s.Asleep()
	if rep.Standby {
		rep.StandbyAt = s.Sleeper.At
	}
	if sc.ExpectStandby != nil && *sc.ExpectStandby != rep.Standby {
		rep.Failures = append(rep.Failures, fmt.Sprintf("standby = %v, want %v", rep.Standby, *sc.ExpectStandby))
	}
	if len(rep.Failures) > 0 {
		return rep, ErrExpectation
	}
	return rep, nil
}

func apply(s *platform.Sim, st Step, rep *Report) error {
	switch {
	case st.Pin != nil:
		l, err := s.Line(st.Pin.Name)
		if err != nil {
			return fmt.Errorf("%w: %s", err, st.Pin.Name)
		}
		l.Set(st.Pin.Level == "high")
	case st.Write != nil:
		s.Engine.HostWrite(st.Write.Index, st.Write.Bytes...)
	case st.Read != nil:
		rep.Reads = append(rep.Reads, ReadResult{
			At:    st.At,
			Index: st.Read.Index,
			Bytes: s.Engine.HostRead(st.Read.Index, st.Read.Len),
		})
	case st.Expect != nil:
		got := s.Engine.HostRead(st.Expect.Index, len(st.Expect.Bytes))
		for i, want := range st.Expect.Bytes {
			if got[i] != want {
				rep.Failures = append(rep.Failures, fmt.Sprintf("t=%d reg[%d] = %#02x, want %#02x",
					st.At, int(st.Expect.Index)+i, got[i], want))
			}
		}
	case st.Console != "":
		s.Input.WriteFrom([]byte(st.Console))
	}
	return nil
}
