package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leafcycle/plantcare-backend/internal/engine"
)

func TestIdentifyPlant(t *testing.T) {
	env := newTestEnv(t, engine.DefaultConfig())

	cases := []struct {
		name        string
		imageURL    string
		wantSpecies string
		wantConf    float64
	}{
		{name: "rose", imageURL: "https://img.example/Rose-garden.jpg", wantSpecies: "Rose", wantConf: 0.72},
		{name: "aloe", imageURL: "https://img.example/my-aloe.png", wantSpecies: "Aloe Vera", wantConf: 0.72},
		{name: "pothos_alias", imageURL: "https://img.example/pothos.jpg", wantSpecies: "Money Plant (Pothos)", wantConf: 0.72},
		{name: "unknown", imageURL: "https://img.example/mystery.jpg", wantSpecies: "Unknown", wantConf: 0.4},
		{name: "empty", imageURL: "", wantSpecies: "Unknown", wantConf: 0.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := env.advisor.IdentifyPlant(tc.imageURL)
			require.Equal(t, tc.wantSpecies, got.Species)
			require.Equal(t, tc.wantConf, got.Confidence)
			require.NotEmpty(t, got.CareGuide)
		})
	}
}

func TestDiagnoseDisease(t *testing.T) {
	env := newTestEnv(t, engine.DefaultConfig())

	cases := []struct {
		name     string
		imageURL string
		want     string
		severity string
	}{
		{name: "leaf_spot", imageURL: "leaf-with-brown-spots.jpg", want: "Leaf Spot", severity: "moderate"},
		{name: "mildew", imageURL: "powdery-leaves.jpg", want: "Powdery Mildew", severity: "high"},
		{name: "healthy", imageURL: "green-leaf.jpg", want: "Unknown", severity: "low"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := env.advisor.DiagnoseDisease(tc.imageURL)
			require.Equal(t, tc.want, got.Disease)
			require.Equal(t, tc.severity, got.Severity)
		})
	}
}

func TestCareChatTips(t *testing.T) {
	env := newTestEnv(t, engine.DefaultConfig())
	ctx := context.Background()
	_, plant := adoptPlant(t, env)

	// Fresh plant at 50/50/50 against the Rose ideals (60/70): only
	// the light tip fires (sunlight 50 < 70-10).
	answer, err := env.advisor.CareChat(ctx, plant.ID, "how is my plant?")
	require.NoError(t, err)
	require.Contains(t, answer, "brighter spot")
	require.NotContains(t, answer, "thirsty")

	// Drain the plant and every tip should fire.
	require.NoError(t, env.db.Model(plant).Updates(map[string]interface{}{
		"hydration":    5,
		"nutrition":    5,
		"sunlight":     5,
		"health_score": 20,
	}).Error)

	answer, err = env.advisor.CareChat(ctx, plant.ID, "help")
	require.NoError(t, err)
	for _, fragment := range []string{"thirsty", "fertilizer", "brighter spot", "health is low"} {
		require.Contains(t, answer, fragment)
	}
}

func TestCareChatHealthyPlant(t *testing.T) {
	env := newTestEnv(t, engine.DefaultConfig())
	ctx := context.Background()
	_, plant := adoptPlant(t, env)

	require.NoError(t, env.db.Model(plant).Updates(map[string]interface{}{
		"hydration": 60,
		"nutrition": 60,
		"sunlight":  70,
	}).Error)

	answer, err := env.advisor.CareChat(ctx, plant.ID, "")
	require.NoError(t, err)
	require.True(t, strings.Contains(answer, "doing great"), "answer: %s", answer)
}
