package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/clients/redis"
	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

const templateListLimit = 100

// CreateTemplateInput carries an already range-validated template; the
// HTTP layer enforces the numeric bounds before the service runs.
type CreateTemplateInput struct {
	TemplateName     string
	ScientificName   *string
	IdealMoisture    int
	IdealLight       int
	IdealTemperature int
	GrowthDays       int
	Instructions     *string
	ExampleImages    []string
}

type TemplateService interface {
	List(ctx context.Context) ([]*types.PlantTemplate, error)
	Create(ctx context.Context, in CreateTemplateInput) (*types.PlantTemplate, error)
	Seed(ctx context.Context) (int, error)
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo repos.PlantTemplateRepo
	cache        redis.TemplateCache
}

// NewTemplateService takes an optional cache; nil means every List
// goes to the database.
func NewTemplateService(db *gorm.DB, log *logger.Logger, templateRepo repos.PlantTemplateRepo, cache redis.TemplateCache) TemplateService {
	serviceLog := log.With("service", "TemplateService")
	return &templateService{db: db, log: serviceLog, templateRepo: templateRepo, cache: cache}
}

func (ts *templateService) List(ctx context.Context) ([]*types.PlantTemplate, error) {
	if ts.cache != nil {
		if cached, ok := ts.cache.Get(ctx); ok {
			return cached, nil
		}
	}
	templates, err := ts.templateRepo.List(ctx, nil, templateListLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	if ts.cache != nil {
		ts.cache.Set(ctx, templates)
	}
	return templates, nil
}

func (ts *templateService) Create(ctx context.Context, in CreateTemplateInput) (*types.PlantTemplate, error) {
	name := strings.TrimSpace(in.TemplateName)
	if name == "" {
		return nil, fmt.Errorf("template_name required")
	}

	row := &types.PlantTemplate{
		ID:               uuid.New(),
		TemplateName:     name,
		ScientificName:   in.ScientificName,
		IdealMoisture:    in.IdealMoisture,
		IdealLight:       in.IdealLight,
		IdealTemperature: in.IdealTemperature,
		GrowthDays:       in.GrowthDays,
		Instructions:     in.Instructions,
		ExampleImages:    datatypes.JSONSlice[string](in.ExampleImages),
	}
	if row.ExampleImages == nil {
		row.ExampleImages = datatypes.JSONSlice[string]{}
	}

	if err := ts.templateRepo.Create(ctx, nil, []*types.PlantTemplate{row}); err != nil {
		return nil, fmt.Errorf("error creating template: %w", err)
	}
	if ts.cache != nil {
		ts.cache.Invalidate(ctx)
	}
	return row, nil
}

// Seed loads the starter species set. It is idempotent: any existing
// templates mean the table was already seeded, and nothing is written.
func (ts *templateService) Seed(ctx context.Context) (int, error) {
	seeded := 0
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := ts.templateRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("error counting templates: %w", err)
		}
		if count > 0 {
			return nil
		}

		seeds := seedTemplates()
		if err := ts.templateRepo.Create(ctx, tx, seeds); err != nil {
			return fmt.Errorf("error seeding templates: %w", err)
		}
		seeded = len(seeds)
		return nil
	}); err != nil {
		return 0, err
	}
	if seeded > 0 {
		ts.log.Info("Seeded plant templates", "count", seeded)
		if ts.cache != nil {
			ts.cache.Invalidate(ctx)
		}
	}
	return seeded, nil
}

func strptr(s string) *string { return &s }

func seedTemplates() []*types.PlantTemplate {
	return []*types.PlantTemplate{
		{
			ID:               uuid.New(),
			TemplateName:     "Rose",
			ScientificName:   strptr("Rosa"),
			IdealMoisture:    60,
			IdealLight:       70,
			IdealTemperature: 22,
			GrowthDays:       180,
			Instructions:     strptr("Water when top soil is dry. Needs bright light."),
			ExampleImages:    datatypes.JSONSlice[string]{},
		},
		{
			ID:               uuid.New(),
			TemplateName:     "Money Plant",
			ScientificName:   strptr("Epipremnum aureum"),
			IdealMoisture:    55,
			IdealLight:       50,
			IdealTemperature: 24,
			GrowthDays:       160,
			Instructions:     strptr("Tolerates low light. Keep soil slightly moist."),
			ExampleImages:    datatypes.JSONSlice[string]{},
		},
		{
			ID:               uuid.New(),
			TemplateName:     "Ficus",
			ScientificName:   strptr("Ficus benjamina"),
			IdealMoisture:    50,
			IdealLight:       60,
			IdealTemperature: 25,
			GrowthDays:       220,
			Instructions:     strptr("Bright indirect light. Let soil dry slightly."),
			ExampleImages:    datatypes.JSONSlice[string]{},
		},
		{
			ID:               uuid.New(),
			TemplateName:     "Aloe Vera",
			ScientificName:   strptr("Aloe barbadensis"),
			IdealMoisture:    30,
			IdealLight:       80,
			IdealTemperature: 26,
			GrowthDays:       240,
			Instructions:     strptr("Succulent; water sparingly. Needs strong light."),
			ExampleImages:    datatypes.JSONSlice[string]{},
		},
	}
}
