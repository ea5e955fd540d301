package app

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/auth"
	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/pkg/common"
)

// settingSchema describes one default settings row installed at boot.
type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{Key: "shop.FreeShippingOver", Default: "500", Description: "Subtotal above which shipping is free"},
	{Key: "shop.FlatShippingFee", Default: "25", Description: "Flat shipping fee below the free threshold"},
	{Key: "shop.TaxRate", Default: "0.08", Description: "Sales tax rate applied to the subtotal"},
	{Key: "shop.Currency", Default: "USD", Description: "Display currency"},
	{Key: "uploads.MaxUploadMB", Default: "8", Description: "Maximum accepted upload size in MB"},
}

func (a *Application) checkAdmin() {
	const adminEmail = "admin@velourluxe.example"
	const defaultPassword = "changeme-now"

	var admin domain.User
	err := a.gormDB.Where("email = ?", adminEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := auth.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Email:     adminEmail,
			Password:  hashed,
			FirstName: "Store",
			LastName:  "Admin",
			Level:     domain.RoleAdmin,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", adminEmail))
		}
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	}
}

func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		category, name, ok := splitSettingKey(schema.Key)
		if !ok {
			zap.L().Warn("invalid setting key format", zap.String("key", schema.Key))
			continue
		}

		var count int64
		a.gormDB.Model(&domain.SiteSetting{}).
			Where("category = ? AND name = ?", category, name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SiteSetting{
				Sort:     sortid,
				Category: category,
				Name:     name,
				Value:    schema.Default,
				Remark:   schema.Description,
			})
			zap.L().Info("initialized setting",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}

	a.checkHomepageContent()
}

func (a *Application) checkHomepageContent() {
	var count int64
	a.gormDB.Model(&domain.SiteSetting{}).
		Where("category = ? AND name = ?", "homepage", "content").
		Count(&count)
	if count > 0 {
		return
	}

	content := domain.HomepageContent{
		Version:      domain.HomepageContentVersion,
		HeroTitle:    "Timeless Luxury, Authenticated",
		HeroSubtitle: "Pre-loved designer handbags, verified by experts",
		HeroImage:    "/media/hero-default.jpg",
	}
	raw, err := jsoniter.MarshalToString(content)
	if err != nil {
		zap.L().Error("failed to encode default homepage content", zap.Error(err))
		return
	}
	a.gormDB.Create(&domain.SiteSetting{
		Category: "homepage",
		Name:     "content",
		Value:    raw,
		Remark:   "Homepage content document",
	})
	zap.L().Info("initialized default homepage content")
}

// checkCatalog seeds a demo catalog when the products table is empty.
func (a *Application) checkCatalog() {
	var count int64
	a.gormDB.Model(&domain.Product{}).Count(&count)
	if count > 0 {
		return
	}

	price := func(v string) decimal.Decimal {
		d, _ := decimal.NewFromString(v)
		return d
	}
	defaultProducts := []domain.Product{
		{Name: "Birkin 30 Togo", Brand: "Hermes", Price: price("12500.00"),
			Colors: []string{"Noir", "Gold", "Etoupe"}, InStock: true, Featured: true},
		{Name: "Classic Flap Medium", Brand: "Chanel", Price: price("8200.00"),
			Colors: []string{"Black", "Beige"}, InStock: true, Featured: true, NewArrival: true},
		{Name: "Lady Dior Medium", Brand: "Dior", Price: price("5600.00"),
			Colors: []string{"Black", "Blush"}, InStock: true, NewArrival: true},
		{Name: "Capucines MM", Brand: "Louis Vuitton", Price: price("6900.00"),
			Colors: []string{"Noir", "Galet"}, InStock: false},
	}
	for _, p := range defaultProducts {
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to seed product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("seeded product", zap.String("name", p.Name))
		}
	}
}

func splitSettingKey(key string) (category, name string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:], i > 0 && i < len(key)-1
		}
	}
	return "", "", false
}
