// Package lunar computes moon phases from first principles. It needs no
// network access and is the deterministic fallback when the astronomy
// provider is unreachable.
package lunar

import "time"

// Phase identifies one of the eight traditional moon phases.
type Phase string

const (
	PhaseNewMoon        Phase = "new_moon"
	PhaseWaxingCrescent Phase = "waxing_crescent"
	PhaseFirstQuarter   Phase = "first_quarter"
	PhaseWaxingGibbous  Phase = "waxing_gibbous"
	PhaseFullMoon       Phase = "full_moon"
	PhaseWaningGibbous  Phase = "waning_gibbous"
	PhaseLastQuarter    Phase = "last_quarter"
	PhaseWaningCrescent Phase = "waning_crescent"
)

const (
	// synodicMonth is the mean length of a lunar cycle in days.
	synodicMonth = 29.530588861

	secondsPerDay = 86400
)

// referenceNewMoon is a known new moon used as the epoch for cycle position.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// PhaseInfo describes the moon on a given date, with the gardening guidance
// attached to that phase.
type PhaseInfo struct {
	Phase        Phase    `json:"phase"`
	Display      string   `json:"phase_display"`
	Illumination float64  `json:"illumination"`
	Waxing       bool     `json:"is_waxing"`
	Advice       string   `json:"agricultural_advice"`
	OptimalFor   []string `json:"optimal_for"`
}

// SignificantPhase is one upcoming quarter-point day within a lookahead
// window.
type SignificantPhase struct {
	Date       time.Time `json:"date"`
	Phase      Phase     `json:"phase"`
	Display    string    `json:"phase_display"`
	OptimalFor []string  `json:"optimal_for"`
}

// PhaseAt computes the moon phase for an instant. Illumination is a
// percentage on a triangular approximation: 0 at new moon, 100 at full moon,
// linear in between.
func (c *Calculator) PhaseAt(t time.Time) PhaseInfo {
	days := t.Sub(referenceNewMoon).Seconds() / secondsPerDay

	// Position in the cycle, 0 at new moon, 0.5 at full moon.
	pos := days / synodicMonth
	pos -= float64(int64(pos))
	if pos < 0 {
		pos++
	}

	var illumination float64
	waxing := pos < 0.5
	if waxing {
		illumination = pos * 2
	} else {
		illumination = (1 - pos) * 2
	}

	phase := phaseForPosition(pos)
	return PhaseInfo{
		Phase:        phase,
		Display:      phaseDisplay[phase],
		Illumination: round1(illumination * 100),
		Waxing:       waxing,
		Advice:       phaseAdvice[phase],
		OptimalFor:   phaseActivities[phase],
	}
}

// SignificantPhases scans the lookahead window day by day and returns the
// days falling on a quarter point (new, full, first or last quarter).
// Consecutive days inside the same quarter window all appear, matching how
// the calendar has always surfaced them.
func (c *Calculator) SignificantPhases(start time.Time, daysAhead int) []SignificantPhase {
	phases := make([]SignificantPhase, 0, daysAhead/4)
	for offset := 0; offset < daysAhead; offset++ {
		day := start.AddDate(0, 0, offset)
		info := c.PhaseAt(day)
		switch info.Phase {
		case PhaseNewMoon, PhaseFullMoon, PhaseFirstQuarter, PhaseLastQuarter:
			phases = append(phases, SignificantPhase{
				Date:       day,
				Phase:      info.Phase,
				Display:    info.Display,
				OptimalFor: info.OptimalFor,
			})
		}
	}
	return phases
}

// Calculator is the stateless phase calculator. It exists as a type so
// services can hold it behind an interface alongside the network-backed
// provider.
type Calculator struct{}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// phaseForPosition maps a cycle position in [0, 1) to a named phase.
// The quarter points get narrow bands so each shows for roughly two days.
func phaseForPosition(pos float64) Phase {
	switch {
	case pos < 0.03 || pos > 0.97:
		return PhaseNewMoon
	case pos < 0.22:
		return PhaseWaxingCrescent
	case pos < 0.28:
		return PhaseFirstQuarter
	case pos < 0.47:
		return PhaseWaxingGibbous
	case pos < 0.53:
		return PhaseFullMoon
	case pos < 0.72:
		return PhaseWaningGibbous
	case pos < 0.78:
		return PhaseLastQuarter
	default:
		return PhaseWaningCrescent
	}
}

func round1(f float64) float64 {
	if f < 0 {
		return float64(int64(f*10-0.5)) / 10
	}
	return float64(int64(f*10+0.5)) / 10
}
