// file: internals/features/finance/settings/service/settings_service.go
package service

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	model "akademiku_backend/internals/features/finance/settings/model"
)

// Provider reads runtime settings with fail-open semantics: lookups never
// return an error, they log a warning and fall back to the given default.
// A storage outage must never block the payment flow.
type Provider struct {
	DB *gorm.DB
}

func NewProvider(db *gorm.DB) *Provider {
	return &Provider{DB: db}
}

func (p *Provider) GetString(key string, def string) string {
	var row model.AppSetting
	if err := p.DB.Where("setting_key = ?", key).First(&row).Error; err != nil {
		logSettingFallback(key, err)
		return def
	}
	return row.SettingValue
}

func (p *Provider) GetInt(key string, def int) int {
	raw := p.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("[WARN] setting %q holds non-integer %q, using default %d", key, raw, def)
		return def
	}
	return v
}

func (p *Provider) GetFloat(key string, def float64) float64 {
	raw := p.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		log.Printf("[WARN] setting %q holds non-numeric %q, using default %v", key, raw, def)
		return def
	}
	return v
}

func (p *Provider) GetBool(key string, def bool) bool {
	raw := p.GetString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("[WARN] setting %q holds non-boolean %q, using default %v", key, raw, def)
		return def
	}
	return v
}

func logSettingFallback(key string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[WARN] setting %q not found, using default", key)
		return
	}
	log.Printf("[WARN] setting %q lookup failed (%v), using default", key, err)
}
