package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/logger"
  "github.com/leafcycle/plantcare-backend/internal/types"
)

// ErrVersionConflict means the plant row changed between the read and
// the write of a read-compute-write cycle. Callers retry the cycle.
var ErrVersionConflict = errors.New("plant version conflict")

type UserPlantRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plant *types.UserPlant) error
  GetByID(ctx context.Context, tx *gorm.DB, plantID uuid.UUID) (*types.UserPlant, error)
  GetByIDWithTemplate(ctx context.Context, tx *gorm.DB, plantID uuid.UUID) (*types.UserPlant, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit int) ([]*types.UserPlant, error)
  UpdateVersioned(ctx context.Context, tx *gorm.DB, plant *types.UserPlant) error
}

type userPlantRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserPlantRepo(db *gorm.DB, baseLog *logger.Logger) UserPlantRepo {
  repoLog := baseLog.With("repo", "UserPlantRepo")
  return &userPlantRepo{db: db, log: repoLog}
}

func (pr *userPlantRepo) Create(ctx context.Context, tx *gorm.DB, plant *types.UserPlant) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).Create(plant).Error
}

func (pr *userPlantRepo) GetByID(ctx context.Context, tx *gorm.DB, plantID uuid.UUID) (*types.UserPlant, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.UserPlant
  if err := transaction.WithContext(ctx).
    Where("id = ?", plantID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *userPlantRepo) GetByIDWithTemplate(ctx context.Context, tx *gorm.DB, plantID uuid.UUID) (*types.UserPlant, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.UserPlant
  if err := transaction.WithContext(ctx).
    Preload("Template").
    Where("id = ?", plantID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *userPlantRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit int) ([]*types.UserPlant, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.UserPlant
  if err := transaction.WithContext(ctx).
    Where("owner_id = ?", ownerID).
    Order("planted_on asc").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// UpdateVersioned writes the engine-owned fields guarded by the row
// version read earlier. Zero rows affected means another writer got
// there first; the caller re-reads and re-runs the engine.
func (pr *userPlantRepo) UpdateVersioned(ctx context.Context, tx *gorm.DB, plant *types.UserPlant) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.UserPlant{}).
    Where("id = ? AND version = ?", plant.ID, plant.Version).
    Updates(map[string]interface{}{
      "growth_points":    plant.GrowthPoints,
      "hydration":        plant.Hydration,
      "nutrition":        plant.Nutrition,
      "sunlight":         plant.Sunlight,
      "health_score":     plant.HealthScore,
      "stage":            plant.Stage,
      "last_action_date": plant.LastActionDate,
      "action_log":       plant.ActionLog,
      "version":          plant.Version + 1,
      "updated_at":       time.Now().UTC(),
    })
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    pr.log.Debug("Stale plant write rejected", "plant_id", plant.ID, "version", plant.Version)
    return ErrVersionConflict
  }
  plant.Version++
  return nil
}
