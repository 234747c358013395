package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/logger"
  "github.com/leafcycle/plantcare-backend/internal/types"
)

type SensorReadingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, reading *types.SensorReading) error
  ListByPlant(ctx context.Context, tx *gorm.DB, plantID uuid.UUID, limit int) ([]*types.SensorReading, error)
}

type sensorReadingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSensorReadingRepo(db *gorm.DB, baseLog *logger.Logger) SensorReadingRepo {
  repoLog := baseLog.With("repo", "SensorReadingRepo")
  return &sensorReadingRepo{db: db, log: repoLog}
}

func (sr *sensorReadingRepo) Create(ctx context.Context, tx *gorm.DB, reading *types.SensorReading) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  return transaction.WithContext(ctx).Create(reading).Error
}

func (sr *sensorReadingRepo) ListByPlant(ctx context.Context, tx *gorm.DB, plantID uuid.UUID, limit int) ([]*types.SensorReading, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SensorReading
  if err := transaction.WithContext(ctx).
    Where("plant_id = ?", plantID).
    Order("recorded_at desc").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
