package database

import (
	"ConteudoOH-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted model in foreign-key order.
func Models() []interface{} {
	return []interface{}{
		&domain.Link{},            // Ссылки
		&domain.Click{},           // Клики (зависят от ссылок)
		&domain.ConversionEvent{}, // События (зависят от кликов)
		&domain.NewsItem{},        // Новости, независимая таблица
	}
}

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := Models()
	log.Info("migrating database models", zap.Int("total_models", len(models)))

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Debug("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData создает демонстрационную ссылку, если таблица ссылок пуста
func SeedData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.Link{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count links: %w", err)
	}
	if count > 0 {
		log.Info("links already exist, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	tipo := "outdoor"
	demo := domain.Link{
		Identifier:     "demo",
		DestinationURL: "https://example.com/",
		PontoDOOH:      "Praca Central",
		Campanha:       "demo",
		TipoMidia:      &tipo,
	}
	demo.ApplyUTMDefaults()

	if err := db.Create(&demo).Error; err != nil {
		log.Error("failed to seed demo link", zap.Error(err))
		return fmt.Errorf("failed to seed demo link: %w", err)
	}

	log.Info("database seeding completed successfully", zap.String("identifier", demo.Identifier))
	return nil
}
