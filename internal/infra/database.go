package infra

import (
	"fmt"

	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (functional indexes in particular).
//
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey
// instead of a driver-specific pgconn error.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the integration
// tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Fornecedor{},
		&model.Material{},
		&model.Palete{},
		&model.Stock{},
		&model.ProducaoOperacao{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded by an existence check so re-running on an
// already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Pallet numbers are unique case-insensitively. The functional index
		// is the authoritative guard; service-level pre-checks only exist for
		// friendlier error messages.
		{"unique lower(no_palete)", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_paletes_no_palete_lower') THEN
    CREATE UNIQUE INDEX uniq_paletes_no_palete_lower ON paletes (lower(no_palete));
  END IF;
END $$`},
		// The projection scans stocks and producao_operacoes by material.
		{"index stocks by material", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stocks_material') THEN
    CREATE INDEX idx_stocks_material ON stocks (material_id);
  END IF;
END $$`},
		{"index producao_operacoes by material", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_producao_operacoes_material') THEN
    CREATE INDEX idx_producao_operacoes_material ON producao_operacoes (material_id);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
