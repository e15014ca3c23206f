// file: internals/features/finance/settings/model/app_setting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AppSetting is one named runtime setting. Values are stored as text and
// parsed by the provider; unknown or malformed values degrade to defaults.
type AppSetting struct {
	SettingID uuid.UUID `json:"setting_id" gorm:"column:setting_id;type:uuid;default:gen_random_uuid();primaryKey"`

	SettingKey         string  `json:"setting_key"         gorm:"column:setting_key;type:varchar(80);not null;uniqueIndex"`
	SettingValue       string  `json:"setting_value"       gorm:"column:setting_value;type:text;not null"`
	SettingDescription *string `json:"setting_description" gorm:"column:setting_description;type:text"`

	SettingCreatedAt time.Time `json:"setting_created_at" gorm:"column:setting_created_at;type:timestamptz;not null;autoCreateTime"`
	SettingUpdatedAt time.Time `json:"setting_updated_at" gorm:"column:setting_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (AppSetting) TableName() string { return "app_settings" }
