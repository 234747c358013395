package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/engine"
	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

const (
	plantListLimit = 200
	// careRetries bounds the optimistic read-compute-write retries when
	// another writer bumped the plant version mid-cycle.
	careRetries = 3
)

type PlantService interface {
	Create(ctx context.Context, ownerID, templateID uuid.UUID, nickname string) (*types.UserPlant, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.UserPlant, error)
	Get(ctx context.Context, plantID uuid.UUID) (*types.UserPlant, error)
	Care(ctx context.Context, plantID uuid.UUID, action engine.ActionType) (*types.UserPlant, int, error)
	RunGrowthTick(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type plantService struct {
	db           *gorm.DB
	log          *logger.Logger
	eng          *engine.Engine
	plantRepo    repos.UserPlantRepo
	templateRepo repos.PlantTemplateRepo
	userRepo     repos.UserRepo
}

func NewPlantService(db *gorm.DB, log *logger.Logger, eng *engine.Engine, plantRepo repos.UserPlantRepo, templateRepo repos.PlantTemplateRepo, userRepo repos.UserRepo) PlantService {
	serviceLog := log.With("service", "PlantService")
	return &plantService{
		db:           db,
		log:          serviceLog,
		eng:          eng,
		plantRepo:    plantRepo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
	}
}

// Create adopts a plant: resolves owner and template, then writes the
// initial simulation state (stats at 50, full health, seed stage).
func (ps *plantService) Create(ctx context.Context, ownerID, templateID uuid.UUID, nickname string) (*types.UserPlant, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("nickname required")
	}

	var out *types.UserPlant
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.userRepo.GetByID(ctx, tx, ownerID); err != nil {
			return fmt.Errorf("invalid user: %w", err)
		}
		if _, err := ps.templateRepo.GetByID(ctx, tx, templateID); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}

		now := time.Now().UTC()
		plant := &types.UserPlant{
			ID:           uuid.New(),
			OwnerID:      ownerID,
			TemplateID:   templateID,
			Nickname:     nickname,
			PlantedOn:    now,
			GrowthPoints: 0,
			Hydration:    50,
			Nutrition:    50,
			Sunlight:     50,
			HealthScore:  100,
			Stage:        types.StageSeed,
			ActionLog:    datatypes.JSONSlice[types.CareActionLogEntry]{},
			Version:      1,
		}
		if err := ps.plantRepo.Create(ctx, tx, plant); err != nil {
			return fmt.Errorf("error creating plant: %w", err)
		}
		out = plant
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ps *plantService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.UserPlant, error) {
	return ps.plantRepo.ListByOwner(ctx, nil, ownerID, plantListLimit)
}

func (ps *plantService) Get(ctx context.Context, plantID uuid.UUID) (*types.UserPlant, error) {
	return ps.plantRepo.GetByIDWithTemplate(ctx, nil, plantID)
}

// Care runs one care action through the engine and persists the result
// with a version check. XP is credited to the owner inside the same
// transaction so a stale write never double-credits.
func (ps *plantService) Care(ctx context.Context, plantID uuid.UUID, action engine.ActionType) (*types.UserPlant, int, error) {
	var (
		out *types.UserPlant
		xp  int
	)

	for attempt := 0; attempt < careRetries; attempt++ {
		err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			plant, err := ps.plantRepo.GetByID(ctx, tx, plantID)
			if err != nil {
				return err
			}
			template, err := ps.templateRepo.GetByID(ctx, tx, plant.TemplateID)
			if err != nil {
				return fmt.Errorf("error resolving template: %w", err)
			}

			awarded, err := ps.eng.ApplyCareAction(plant, template, action, time.Now().UTC())
			if err != nil {
				return err
			}
			if err := ps.plantRepo.UpdateVersioned(ctx, tx, plant); err != nil {
				return err
			}
			if err := ps.userRepo.AddXP(ctx, tx, plant.OwnerID, awarded); err != nil {
				return fmt.Errorf("error crediting xp: %w", err)
			}
			out = plant
			xp = awarded
			return nil
		})
		if err == nil {
			return out, xp, nil
		}
		if errors.Is(err, repos.ErrVersionConflict) {
			ps.log.Debug("Care write conflicted, retrying", "plant_id", plantID, "attempt", attempt+1)
			continue
		}
		return nil, 0, err
	}
	return nil, 0, fmt.Errorf("plant %s: %w", plantID, repos.ErrVersionConflict)
}

// RunGrowthTick advances time for every plant the owner has: one
// decay/rescore/grow pass per plant, each persisted independently.
// Plants whose writes keep conflicting are skipped, not failed.
func (ps *plantService) RunGrowthTick(ctx context.Context, ownerID uuid.UUID) (int, error) {
	plants, err := ps.plantRepo.ListByOwner(ctx, nil, ownerID, plantListLimit)
	if err != nil {
		return 0, fmt.Errorf("error listing plants: %w", err)
	}
	if len(plants) == 0 {
		return 0, nil
	}

	templateIDs := make([]uuid.UUID, 0, len(plants))
	seen := map[uuid.UUID]struct{}{}
	for _, p := range plants {
		if _, ok := seen[p.TemplateID]; ok {
			continue
		}
		seen[p.TemplateID] = struct{}{}
		templateIDs = append(templateIDs, p.TemplateID)
	}
	templates, err := ps.templateRepo.GetByIDs(ctx, nil, templateIDs)
	if err != nil {
		return 0, fmt.Errorf("error resolving templates: %w", err)
	}
	byID := make(map[uuid.UUID]*types.PlantTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	updated := 0
	for _, plant := range plants {
		template, ok := byID[plant.TemplateID]
		if !ok {
			ps.log.Warn("Plant references missing template, skipping", "plant_id", plant.ID, "template_id", plant.TemplateID)
			continue
		}
		if err := ps.tickOne(ctx, plant.ID, template); err != nil {
			if errors.Is(err, repos.ErrVersionConflict) {
				ps.log.Debug("Growth tick conflicted, skipping plant", "plant_id", plant.ID)
				continue
			}
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (ps *plantService) tickOne(ctx context.Context, plantID uuid.UUID, template *types.PlantTemplate) error {
	var lastErr error
	for attempt := 0; attempt < careRetries; attempt++ {
		lastErr = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			plant, err := ps.plantRepo.GetByID(ctx, tx, plantID)
			if err != nil {
				return err
			}
			ps.eng.Tick(plant, template)
			return ps.plantRepo.UpdateVersioned(ctx, tx, plant)
		})
		if lastErr == nil || !errors.Is(lastErr, repos.ErrVersionConflict) {
			return lastErr
		}
	}
	return lastErr
}
