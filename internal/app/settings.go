package app

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/domain"
)

// SettingsManager reads and writes site_settings rows with a small
// in-memory cache. Values are stored as strings and cast on read.
type SettingsManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, cache: make(map[string]string)}
}

func settingKey(category, name string) string {
	return category + "." + name
}

func (m *SettingsManager) GetString(category, name string) string {
	key := settingKey(category, name)
	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var row domain.SiteSetting
	if err := m.db.Where("category = ? AND name = ?", category, name).First(&row).Error; err != nil {
		return ""
	}
	m.mu.Lock()
	m.cache[key] = row.Value
	m.mu.Unlock()
	return row.Value
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetDecimal(category, name string) decimal.Decimal {
	v, err := decimal.NewFromString(m.GetString(category, name))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Set upserts one setting row and refreshes the cache.
func (m *SettingsManager) Set(category, name, value string) error {
	var row domain.SiteSetting
	err := m.db.Where("category = ? AND name = ?", category, name).First(&row).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		err = m.db.Create(&domain.SiteSetting{
			Category: category,
			Name:     name,
			Value:    value,
		}).Error
	case err == nil:
		err = m.db.Model(&domain.SiteSetting{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		zap.L().Error("failed to save setting",
			zap.String("category", category), zap.String("name", name), zap.Error(err))
		return err
	}
	m.mu.Lock()
	m.cache[settingKey(category, name)] = value
	m.mu.Unlock()
	return nil
}
