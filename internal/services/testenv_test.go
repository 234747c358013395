package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/engine"
	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

type testEnv struct {
	db           *gorm.DB
	userRepo     repos.UserRepo
	templateRepo repos.PlantTemplateRepo
	plantRepo    repos.UserPlantRepo
	sensorRepo   repos.SensorReadingRepo

	users     UserService
	templates TemplateService
	plants    PlantService
	sensors   SensorService
	advisor   AdvisorService
}

func newTestEnv(t *testing.T, cfg engine.Config) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.PlantTemplate{},
		&types.UserPlant{},
		&types.SensorReading{},
	))

	log, err := logger.New("development")
	require.NoError(t, err)

	eng := engine.New(cfg)
	env := &testEnv{
		db:           gdb,
		userRepo:     repos.NewUserRepo(gdb, log),
		templateRepo: repos.NewPlantTemplateRepo(gdb, log),
		plantRepo:    repos.NewUserPlantRepo(gdb, log),
		sensorRepo:   repos.NewSensorReadingRepo(gdb, log),
	}
	env.users = NewUserService(gdb, log, env.userRepo)
	env.templates = NewTemplateService(gdb, log, env.templateRepo, nil)
	env.plants = NewPlantService(gdb, log, eng, env.plantRepo, env.templateRepo, env.userRepo)
	env.sensors = NewSensorService(gdb, log, eng, env.plantRepo, env.templateRepo, env.sensorRepo)
	env.advisor = NewAdvisorService(gdb, log, env.plantRepo, env.templateRepo)
	return env
}
