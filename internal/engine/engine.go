// Package engine evolves a UserPlant deterministically from care
// actions, sensor readings, and plain passage of time. It never touches
// the database or the clock: callers hand it already-resolved records
// plus an explicit timestamp, and it mutates the plant in place.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/leafcycle/plantcare-backend/internal/types"

	"gorm.io/datatypes"
)

// IdealNutrition is the fixed nutrition target used by health scoring.
// Unlike moisture and light it is not template-configurable.
const IdealNutrition = 60

// Growth-stage thresholds over growth_points, checked descending.
const (
	SproutThreshold   = 100
	JuvenileThreshold = 250
	MatureThreshold   = 500
)

const growthReward = 10

// ErrUnknownAction signals a care action type outside the recognized
// set. The plant is left untouched when it is returned.
var ErrUnknownAction = errors.New("unknown care action")

type ActionType string

const (
	ActionWater       ActionType = "water"
	ActionFertilize   ActionType = "fertilize"
	ActionSunlightAdd ActionType = "sunlight_add"
	ActionTrim        ActionType = "trim"
	ActionRepot       ActionType = "repot"
)

type careEffect struct {
	xp    int
	apply func(p *types.UserPlant)
}

var careEffects = map[ActionType]careEffect{
	ActionWater: {xp: 5, apply: func(p *types.UserPlant) {
		p.Hydration = clampStat(p.Hydration + 20)
	}},
	ActionFertilize: {xp: 7, apply: func(p *types.UserPlant) {
		p.Nutrition = clampStat(p.Nutrition + 15)
	}},
	ActionSunlightAdd: {xp: 4, apply: func(p *types.UserPlant) {
		p.Sunlight = clampStat(p.Sunlight + 10)
	}},
	ActionTrim: {xp: 6, apply: func(p *types.UserPlant) {
		p.HealthScore = clampStat(p.HealthScore + 5)
	}},
	ActionRepot: {xp: 10, apply: func(p *types.UserPlant) {
		p.HealthScore = clampStat(p.HealthScore + 10)
	}},
}

type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampStat(v int) int {
	return int(clamp(float64(v), 0, 100))
}

// ApplyDecay models passage of time independent of any action:
// hydration -5, nutrition -2, sunlight scaled by 0.95, all clamped.
func (e *Engine) ApplyDecay(p *types.UserPlant) {
	p.Hydration = clampStat(p.Hydration - 5)
	p.Nutrition = clampStat(p.Nutrition - 2)
	p.Sunlight = clampStat(int(math.Round(float64(p.Sunlight) * 0.95)))
}

// ComputeHealth derives the health score fresh from the current stats:
// 100 minus the mean deviation from the template ideals (nutrition is
// measured against the fixed IdealNutrition target). It is never
// incremented in place, only recomputed.
func (e *Engine) ComputeHealth(p *types.UserPlant, t *types.PlantTemplate) int {
	devM := math.Abs(float64(p.Hydration - t.IdealMoisture))
	devL := math.Abs(float64(p.Sunlight - t.IdealLight))
	devN := math.Abs(float64(p.Nutrition - IdealNutrition))
	score := 100 - (devM+devL+devN)/3.0
	return int(clamp(score, 0, 100))
}

// StageFor re-derives the growth stage from growth points alone.
// growth_points never decreases, so the stage is effectively
// non-decreasing over a plant's lifetime.
func StageFor(growthPoints int) types.PlantStage {
	switch {
	case growthPoints >= MatureThreshold:
		return types.StageMature
	case growthPoints >= JuvenileThreshold:
		return types.StageJuvenile
	case growthPoints >= SproutThreshold:
		return types.StageSprout
	default:
		return types.StageSeed
	}
}

// ApplyGrowth credits growth points when the plant is healthy enough
// (>70) and re-derives the stage. The template's growth_days is not
// consulted here; it stays an informational field.
func (e *Engine) ApplyGrowth(p *types.UserPlant, t *types.PlantTemplate) {
	if p.HealthScore > 70 {
		p.GrowthPoints += growthReward
	}
	p.Stage = StageFor(p.GrowthPoints)
}

// ApplyCareAction runs one care event against the plant: decay first,
// then the action's effect, then a fresh health score and growth pass,
// then the action-log entry. It returns the XP to credit to the owning
// user. An unrecognized action type fails before any mutation.
//
// Note the trim/repot health bump is overwritten by the recompute that
// follows it; that matches the original behavior and is deliberate.
func (e *Engine) ApplyCareAction(p *types.UserPlant, t *types.PlantTemplate, action ActionType, now time.Time) (int, error) {
	effect, ok := careEffects[action]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}

	e.ApplyDecay(p)
	effect.apply(p)
	p.HealthScore = e.ComputeHealth(p, t)
	e.ApplyGrowth(p, t)

	entry := types.CareActionLogEntry{
		Type:     string(action),
		Value:    1,
		XPReward: effect.xp,
		Date:     now,
	}
	p.ActionLog = append(datatypes.JSONSlice[types.CareActionLogEntry]{entry}, p.ActionLog...)
	if n := e.cfg.ActionLogCap; n > 0 && len(p.ActionLog) > n {
		p.ActionLog = p.ActionLog[:n]
	}
	p.LastActionDate = &now

	return effect.xp, nil
}

// IngestSensorReading maps a sensor packet onto the plant's stats.
// Moisture overwrites hydration directly; light is normalized from a
// 0-1000 scale and overwrites sunlight, saturating outside that range.
// Temperature and humidity are audit-only and do not feed any derived
// stat. No decay is applied unless DecayOnSensorIngest is set, which
// keeps the original care/sensor asymmetry as the default.
func (e *Engine) IngestSensorReading(p *types.UserPlant, t *types.PlantTemplate, r *types.SensorReading) {
	if e.cfg.DecayOnSensorIngest {
		e.ApplyDecay(p)
	}
	if r.Moisture != nil {
		p.Hydration = int(clamp(*r.Moisture, 0, 100))
	}
	if r.Light != nil {
		p.Sunlight = int(clamp(*r.Light/1000.0*100, 0, 100))
	}
	p.HealthScore = e.ComputeHealth(p, t)
	e.ApplyGrowth(p, t)
}

// Tick is one decay pass with no event: decay, rescore, grow. The
// batch growth operation runs it once per plant.
func (e *Engine) Tick(p *types.UserPlant, t *types.PlantTemplate) {
	e.ApplyDecay(p)
	p.HealthScore = e.ComputeHealth(p, t)
	e.ApplyGrowth(p, t)
}
