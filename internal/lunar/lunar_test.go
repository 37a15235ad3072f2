package lunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseAt_ReferenceNewMoon(t *testing.T) {
	calc := NewCalculator()

	info := calc.PhaseAt(time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC))

	assert.Equal(t, PhaseNewMoon, info.Phase)
	assert.True(t, info.Waxing)
	assert.InDelta(t, 0.0, info.Illumination, 0.5)
	assert.NotEmpty(t, info.Advice)
	assert.NotEmpty(t, info.OptimalFor)
}

func TestPhaseAt_HalfCycleIsFullMoon(t *testing.T) {
	calc := NewCalculator()
	half := time.Duration(synodicMonth / 2 * 24 * float64(time.Hour))

	info := calc.PhaseAt(referenceNewMoon.Add(half))

	assert.Equal(t, PhaseFullMoon, info.Phase)
	assert.False(t, info.Waxing)
	assert.InDelta(t, 100.0, info.Illumination, 0.5)
}

func TestPhaseAt_QuarterCycle(t *testing.T) {
	calc := NewCalculator()
	quarter := time.Duration(synodicMonth / 4 * 24 * float64(time.Hour))

	info := calc.PhaseAt(referenceNewMoon.Add(quarter))

	assert.Equal(t, PhaseFirstQuarter, info.Phase)
	assert.True(t, info.Waxing)
	assert.InDelta(t, 50.0, info.Illumination, 1.0)
}

func TestPhaseAt_Deterministic(t *testing.T) {
	calc := NewCalculator()
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	first := calc.PhaseAt(at)
	second := calc.PhaseAt(at)

	assert.Equal(t, first, second)
}

func TestPhaseAt_IlluminationBounds(t *testing.T) {
	calc := NewCalculator()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 60; offset++ {
		info := calc.PhaseAt(start.AddDate(0, 0, offset))
		assert.GreaterOrEqual(t, info.Illumination, 0.0)
		assert.LessOrEqual(t, info.Illumination, 100.0)
		assert.Contains(t, phaseDisplay, info.Phase)
	}
}

func TestPhaseAt_BeforeReferenceEpoch(t *testing.T) {
	calc := NewCalculator()

	// One full cycle before the epoch lands on the same phase.
	cycle := time.Duration(synodicMonth * 24 * float64(time.Hour))
	info := calc.PhaseAt(referenceNewMoon.Add(-cycle))

	assert.Equal(t, PhaseNewMoon, info.Phase)
}

func TestSignificantPhases_OnlyQuarterPoints(t *testing.T) {
	calc := NewCalculator()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	phases := calc.SignificantPhases(start, 30)

	require.NotEmpty(t, phases)
	allowed := map[Phase]bool{
		PhaseNewMoon:      true,
		PhaseFullMoon:     true,
		PhaseFirstQuarter: true,
		PhaseLastQuarter:  true,
	}
	for _, p := range phases {
		assert.True(t, allowed[p.Phase], "unexpected phase %s on %s", p.Phase, p.Date)
		assert.False(t, p.Date.Before(start))
		assert.True(t, p.Date.Before(start.AddDate(0, 0, 30)))
	}
}

func TestSignificantPhases_CoversFullCycle(t *testing.T) {
	calc := NewCalculator()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// A 30 day window spans one synodic month, so all four quarter
	// points must show up.
	phases := calc.SignificantPhases(start, 30)

	seen := map[Phase]bool{}
	for _, p := range phases {
		seen[p.Phase] = true
	}
	assert.True(t, seen[PhaseNewMoon])
	assert.True(t, seen[PhaseFullMoon])
	assert.True(t, seen[PhaseFirstQuarter])
	assert.True(t, seen[PhaseLastQuarter])
}

func TestSignificantPhases_EmptyWindow(t *testing.T) {
	calc := NewCalculator()

	phases := calc.SignificantPhases(time.Now(), 0)

	assert.Empty(t, phases)
}
