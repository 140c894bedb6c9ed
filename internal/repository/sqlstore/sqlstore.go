// Package sqlstore implements repository.Storage on top of GORM. The same code
// runs against PostgreSQL in production and SQLite for embedded setups and tests.
package sqlstore

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ repository.Storage = (*Storage)(nil)

// Storage реализует интерфейс repository.Storage через GORM
type Storage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр storage
func New(db *gorm.DB, log *zap.Logger) *Storage {
	return &Storage{
		db:  db,
		log: log,
	}
}

// Ping проверяет доступность базы данных
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes unique-constraint failures from either driver.
// TranslateError covers postgres; the message check covers drivers without a translator.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// localTime normalizes filter bounds to the storage time zone so string-backed
// datetime columns compare correctly.
func localTime(t *time.Time) time.Time {
	return t.In(domain.Location)
}
