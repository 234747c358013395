package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/leafcycle/plantcare-backend/internal/types"
)

func testTemplate() *types.PlantTemplate {
	return &types.PlantTemplate{
		TemplateName:  "Rose",
		IdealMoisture: 60,
		IdealLight:    70,
		GrowthDays:    180,
	}
}

func testPlant() *types.UserPlant {
	return &types.UserPlant{
		Nickname:     "rosie",
		Hydration:    50,
		Nutrition:    50,
		Sunlight:     50,
		HealthScore:  100,
		GrowthPoints: 0,
		Stage:        types.StageSeed,
	}
}

func TestApplyCareActionWater(t *testing.T) {
	e := New(DefaultConfig())
	p := testPlant()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	xp, err := e.ApplyCareAction(p, testTemplate(), ActionWater, now)
	if err != nil {
		t.Fatalf("ApplyCareAction(water) error: %v", err)
	}
	if xp != 5 {
		t.Fatalf("xp = %d, want 5", xp)
	}
	// Decay runs first (45/48/48), then +20 hydration.
	if p.Hydration != 65 {
		t.Fatalf("hydration = %d, want 65", p.Hydration)
	}
	if p.Nutrition != 48 {
		t.Fatalf("nutrition = %d, want 48", p.Nutrition)
	}
	if p.Sunlight != 48 {
		t.Fatalf("sunlight = %d, want 48", p.Sunlight)
	}
	// 100 - avg(|65-60|, |48-70|, |48-60|) = 100 - 13.
	if p.HealthScore != 87 {
		t.Fatalf("health_score = %d, want 87", p.HealthScore)
	}
	if p.GrowthPoints != 10 {
		t.Fatalf("growth_points = %d, want 10", p.GrowthPoints)
	}
	if p.LastActionDate == nil || !p.LastActionDate.Equal(now) {
		t.Fatalf("last_action_date = %v, want %v", p.LastActionDate, now)
	}
	if len(p.ActionLog) != 1 {
		t.Fatalf("action_log length = %d, want 1", len(p.ActionLog))
	}
	entry := p.ActionLog[0]
	if entry.Type != "water" || entry.Value != 1 || entry.XPReward != 5 || !entry.Date.Equal(now) {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
}

func TestApplyCareActionEffects(t *testing.T) {
	cases := []struct {
		name       string
		action     ActionType
		wantXP     int
		checkStat  func(p *types.UserPlant) int
		wantStat   int
	}{
		{name: "fertilize", action: ActionFertilize, wantXP: 7, checkStat: func(p *types.UserPlant) int { return p.Nutrition }, wantStat: 63},
		{name: "sunlight_add", action: ActionSunlightAdd, wantXP: 4, checkStat: func(p *types.UserPlant) int { return p.Sunlight }, wantStat: 58},
		{name: "trim", action: ActionTrim, wantXP: 6, checkStat: func(p *types.UserPlant) int { return p.Hydration }, wantStat: 45},
		{name: "repot", action: ActionRepot, wantXP: 10, checkStat: func(p *types.UserPlant) int { return p.Hydration }, wantStat: 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(DefaultConfig())
			p := testPlant()
			xp, err := e.ApplyCareAction(p, testTemplate(), tc.action, time.Now().UTC())
			if err != nil {
				t.Fatalf("ApplyCareAction(%s) error: %v", tc.action, err)
			}
			if xp != tc.wantXP {
				t.Fatalf("xp = %d, want %d", xp, tc.wantXP)
			}
			if got := tc.checkStat(p); got != tc.wantStat {
				t.Fatalf("stat = %d, want %d", got, tc.wantStat)
			}
		})
	}
}

func TestTrimBumpOverwrittenByRecompute(t *testing.T) {
	// The trim health bump is transient: the recompute that follows
	// derives the score purely from the stats vs. ideals.
	e := New(DefaultConfig())
	trimmed := testPlant()
	ticked := testPlant()

	if _, err := e.ApplyCareAction(trimmed, testTemplate(), ActionTrim, time.Now().UTC()); err != nil {
		t.Fatalf("trim error: %v", err)
	}
	e.Tick(ticked, testTemplate())

	if trimmed.HealthScore != ticked.HealthScore {
		t.Fatalf("trim health %d differs from plain tick health %d", trimmed.HealthScore, ticked.HealthScore)
	}
}

func TestApplyCareActionUnknown(t *testing.T) {
	e := New(DefaultConfig())
	p := testPlant()
	before := *p

	xp, err := e.ApplyCareAction(p, testTemplate(), ActionType("prune"), time.Now().UTC())
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
	if xp != 0 {
		t.Fatalf("xp = %d, want 0", xp)
	}
	if !reflect.DeepEqual(before, *p) {
		t.Fatalf("plant mutated on unknown action: before=%+v after=%+v", before, *p)
	}
	if len(p.ActionLog) != 0 {
		t.Fatalf("action_log grew on unknown action")
	}
}

func TestStageFor(t *testing.T) {
	cases := []struct {
		gp   int
		want types.PlantStage
	}{
		{0, types.StageSeed},
		{99, types.StageSeed},
		{100, types.StageSprout},
		{249, types.StageSprout},
		{250, types.StageJuvenile},
		{499, types.StageJuvenile},
		{500, types.StageMature},
		{10000, types.StageMature},
	}
	for _, tc := range cases {
		if got := StageFor(tc.gp); got != tc.want {
			t.Fatalf("StageFor(%d) = %s, want %s", tc.gp, got, tc.want)
		}
	}
}

func TestSeedToSproutTransition(t *testing.T) {
	e := New(DefaultConfig())
	p := testPlant()
	p.GrowthPoints = 95
	p.Stage = types.StageSeed

	// Healthy plant: one action pushes growth points past the sprout
	// threshold.
	if _, err := e.ApplyCareAction(p, testTemplate(), ActionWater, time.Now().UTC()); err != nil {
		t.Fatalf("water error: %v", err)
	}
	if p.GrowthPoints != 105 {
		t.Fatalf("growth_points = %d, want 105", p.GrowthPoints)
	}
	if p.Stage != types.StageSprout {
		t.Fatalf("stage = %s, want sprout", p.Stage)
	}
}

func TestNoGrowthWhenUnhealthy(t *testing.T) {
	e := New(DefaultConfig())
	p := testPlant()
	p.Hydration = 0
	p.Nutrition = 0
	p.Sunlight = 0

	e.Tick(p, testTemplate())
	if p.GrowthPoints != 0 {
		t.Fatalf("growth_points = %d, want 0 for unhealthy plant", p.GrowthPoints)
	}
}

func TestDecayStabilizesAtFloor(t *testing.T) {
	e := New(DefaultConfig())
	p := testPlant()
	for i := 0; i < 200; i++ {
		e.ApplyDecay(p)
	}
	if p.Hydration != 0 || p.Nutrition != 0 || p.Sunlight != 0 {
		t.Fatalf("stats did not stabilize at floor: %d/%d/%d", p.Hydration, p.Nutrition, p.Sunlight)
	}
	// Further decay is a no-op once floored.
	e.ApplyDecay(p)
	if p.Hydration != 0 || p.Nutrition != 0 || p.Sunlight != 0 {
		t.Fatalf("floor not stable under repeated decay")
	}
}

func TestComputeHealthPure(t *testing.T) {
	e := New(DefaultConfig())
	tmpl := testTemplate()
	p := testPlant()
	p.Hydration = 33
	p.Sunlight = 71
	p.Nutrition = 58

	first := e.ComputeHealth(p, tmpl)
	for i := 0; i < 10; i++ {
		if got := e.ComputeHealth(p, tmpl); got != first {
			t.Fatalf("ComputeHealth not stable: %d then %d", first, got)
		}
	}
}

func TestIngestSensorReading(t *testing.T) {
	light := 500.0
	moisture := 42.0
	hot := 55.0

	cases := []struct {
		name    string
		reading types.SensorReading
		check   func(t *testing.T, p *types.UserPlant)
	}{
		{
			name:    "light_normalized_no_decay",
			reading: types.SensorReading{Light: &light},
			check: func(t *testing.T, p *types.UserPlant) {
				if p.Sunlight != 50 {
					t.Fatalf("sunlight = %d, want 50", p.Sunlight)
				}
				// No decay: hydration and nutrition untouched.
				if p.Hydration != 50 || p.Nutrition != 50 {
					t.Fatalf("decay applied on sensor ingest: %d/%d", p.Hydration, p.Nutrition)
				}
			},
		},
		{
			name:    "moisture_overwrites_hydration",
			reading: types.SensorReading{Moisture: &moisture},
			check: func(t *testing.T, p *types.UserPlant) {
				if p.Hydration != 42 {
					t.Fatalf("hydration = %d, want 42", p.Hydration)
				}
			},
		},
		{
			name: "light_saturates_above_scale",
			reading: func() types.SensorReading {
				v := 2500.0
				return types.SensorReading{Light: &v}
			}(),
			check: func(t *testing.T, p *types.UserPlant) {
				if p.Sunlight != 100 {
					t.Fatalf("sunlight = %d, want 100", p.Sunlight)
				}
			},
		},
		{
			name:    "temperature_and_humidity_ignored",
			reading: types.SensorReading{Temperature: &hot, Humidity: &hot},
			check: func(t *testing.T, p *types.UserPlant) {
				if p.Hydration != 50 || p.Sunlight != 50 || p.Nutrition != 50 {
					t.Fatalf("audit-only fields changed stats: %d/%d/%d", p.Hydration, p.Nutrition, p.Sunlight)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(DefaultConfig())
			p := testPlant()
			r := tc.reading
			e.IngestSensorReading(p, testTemplate(), &r)
			tc.check(t, p)
		})
	}
}

func TestIngestSensorReadingWithDecayFlag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DecayOnSensorIngest = true
	e := New(cfg)
	p := testPlant()

	e.IngestSensorReading(p, testTemplate(), &types.SensorReading{})
	if p.Hydration != 45 || p.Nutrition != 48 || p.Sunlight != 48 {
		t.Fatalf("decay flag not honored: %d/%d/%d", p.Hydration, p.Nutrition, p.Sunlight)
	}
}

func TestActionLogCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActionLogCap = 3
	e := New(cfg)
	p := testPlant()

	actions := []ActionType{ActionWater, ActionFertilize, ActionSunlightAdd, ActionTrim, ActionRepot}
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, a := range actions {
		if _, err := e.ApplyCareAction(p, testTemplate(), a, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("action %s error: %v", a, err)
		}
	}
	if len(p.ActionLog) != 3 {
		t.Fatalf("action_log length = %d, want 3", len(p.ActionLog))
	}
	// Most recent first; oldest entries truncated.
	if p.ActionLog[0].Type != "repot" || p.ActionLog[2].Type != "sunlight_add" {
		t.Fatalf("unexpected log order after cap: %+v", p.ActionLog)
	}
}

func TestInvariantsUnderRandomSequence(t *testing.T) {
	e := New(DefaultConfig())
	tmpl := testTemplate()
	p := testPlant()
	rng := rand.New(rand.NewSource(1))

	actions := []ActionType{ActionWater, ActionFertilize, ActionSunlightAdd, ActionTrim, ActionRepot}
	lastGP := p.GrowthPoints

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			if _, err := e.ApplyCareAction(p, tmpl, actions[rng.Intn(len(actions))], time.Now().UTC()); err != nil {
				t.Fatalf("care action error: %v", err)
			}
		case 1:
			m := rng.Float64() * 150
			l := rng.Float64() * 1500
			e.IngestSensorReading(p, tmpl, &types.SensorReading{Moisture: &m, Light: &l})
		default:
			e.Tick(p, tmpl)
		}

		for name, v := range map[string]int{
			"hydration":    p.Hydration,
			"nutrition":    p.Nutrition,
			"sunlight":     p.Sunlight,
			"health_score": p.HealthScore,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("step %d: %s = %d out of [0,100]", i, name, v)
			}
		}
		if p.GrowthPoints < lastGP {
			t.Fatalf("step %d: growth_points decreased %d -> %d", i, lastGP, p.GrowthPoints)
		}
		lastGP = p.GrowthPoints
		if p.Stage != StageFor(p.GrowthPoints) {
			t.Fatalf("step %d: stage %s inconsistent with growth_points %d", i, p.Stage, p.GrowthPoints)
		}
	}
}
