package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/engine"
	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

// SensorInput is one IoT packet for a plant. All measurements are
// optional; absent fields leave the corresponding stat alone.
type SensorInput struct {
	PlantID     uuid.UUID
	Moisture    *float64
	Temperature *float64
	Humidity    *float64
	Light       *float64
}

type SensorService interface {
	Ingest(ctx context.Context, in SensorInput) (*types.UserPlant, error)
}

type sensorService struct {
	db           *gorm.DB
	log          *logger.Logger
	eng          *engine.Engine
	plantRepo    repos.UserPlantRepo
	templateRepo repos.PlantTemplateRepo
	sensorRepo   repos.SensorReadingRepo
}

func NewSensorService(db *gorm.DB, log *logger.Logger, eng *engine.Engine, plantRepo repos.UserPlantRepo, templateRepo repos.PlantTemplateRepo, sensorRepo repos.SensorReadingRepo) SensorService {
	serviceLog := log.With("service", "SensorService")
	return &sensorService{
		db:           db,
		log:          serviceLog,
		eng:          eng,
		plantRepo:    plantRepo,
		templateRepo: templateRepo,
		sensorRepo:   sensorRepo,
	}
}

// Ingest maps the packet onto the plant through the engine and stores
// the raw reading as an immutable audit row in the same transaction.
func (ss *sensorService) Ingest(ctx context.Context, in SensorInput) (*types.UserPlant, error) {
	var out *types.UserPlant

	for attempt := 0; attempt < careRetries; attempt++ {
		err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			plant, err := ss.plantRepo.GetByID(ctx, tx, in.PlantID)
			if err != nil {
				return err
			}
			template, err := ss.templateRepo.GetByID(ctx, tx, plant.TemplateID)
			if err != nil {
				return fmt.Errorf("error resolving template: %w", err)
			}

			reading := &types.SensorReading{
				ID:          uuid.New(),
				PlantID:     plant.ID,
				Moisture:    in.Moisture,
				Temperature: in.Temperature,
				Humidity:    in.Humidity,
				Light:       in.Light,
				RecordedAt:  time.Now().UTC(),
			}

			ss.eng.IngestSensorReading(plant, template, reading)
			if err := ss.plantRepo.UpdateVersioned(ctx, tx, plant); err != nil {
				return err
			}
			if err := ss.sensorRepo.Create(ctx, tx, reading); err != nil {
				return fmt.Errorf("error storing sensor reading: %w", err)
			}
			out = plant
			return nil
		})
		if err == nil {
			return out, nil
		}
		if errors.Is(err, repos.ErrVersionConflict) {
			ss.log.Debug("Sensor write conflicted, retrying", "plant_id", in.PlantID, "attempt", attempt+1)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("plant %s: %w", in.PlantID, repos.ErrVersionConflict)
}
