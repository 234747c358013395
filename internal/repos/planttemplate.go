package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/logger"
  "github.com/leafcycle/plantcare-backend/internal/types"
)

type PlantTemplateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, templates []*types.PlantTemplate) error
  GetByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.PlantTemplate, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PlantTemplate, error)
  List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PlantTemplate, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type plantTemplateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlantTemplateRepo(db *gorm.DB, baseLog *logger.Logger) PlantTemplateRepo {
  repoLog := baseLog.With("repo", "PlantTemplateRepo")
  return &plantTemplateRepo{db: db, log: repoLog}
}

func (pr *plantTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.PlantTemplate) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(templates) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&templates).Error
}

func (pr *plantTemplateRepo) GetByID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.PlantTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.PlantTemplate
  if err := transaction.WithContext(ctx).
    Where("id = ?", templateID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *plantTemplateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PlantTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.PlantTemplate
  if len(templateIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *plantTemplateRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PlantTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.PlantTemplate
  if err := transaction.WithContext(ctx).
    Order("template_name asc").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *plantTemplateRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.PlantTemplate{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
