package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/types"
  "github.com/leafcycle/plantcare-backend/internal/utils"
  "github.com/leafcycle/plantcare-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "plantcare", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.PlantTemplate{},
    &types.UserPlant{},
    &types.SensorReading{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    stmt string
  }{
    {
      name: "fk_user_plant_owner_id",
      stmt: `ALTER TABLE "user_plant" ADD CONSTRAINT "fk_user_plant_owner_id" FOREIGN KEY ("owner_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    },
    {
      name: "fk_user_plant_template_id",
      stmt: `ALTER TABLE "user_plant" ADD CONSTRAINT "fk_user_plant_template_id" FOREIGN KEY ("template_id") REFERENCES "plant_template"("id") ON DELETE CASCADE`,
    },
    {
      name: "fk_sensor_reading_plant_id",
      stmt: `ALTER TABLE "sensor_reading" ADD CONSTRAINT "fk_sensor_reading_plant_id" FOREIGN KEY ("plant_id") REFERENCES "user_plant"("id") ON DELETE CASCADE`,
    },
  }
  for _, c := range constraints {
    var count int64
    if err := s.db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, c.name).Scan(&count).Error; err != nil {
      return fmt.Errorf("failed to check %s: %w", c.name, err)
    }
    if count > 0 {
      continue
    }
    if err := s.db.Exec(c.stmt).Error; err != nil {
      return fmt.Errorf("failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
