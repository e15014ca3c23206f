// file: internals/features/finance/settings/dto/app_setting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/finance/settings/model"
)

/* =============== REQUESTS =============== */

// Upsert by key
type UpsertAppSettingRequest struct {
	SettingKey         string  `json:"setting_key"         validate:"required,min=3,max=80"`
	SettingValue       string  `json:"setting_value"       validate:"required"`
	SettingDescription *string `json:"setting_description" validate:"omitempty,max=500"`
}

func (r UpsertAppSettingRequest) ToModel() *m.AppSetting {
	return &m.AppSetting{
		SettingKey:         r.SettingKey,
		SettingValue:       r.SettingValue,
		SettingDescription: r.SettingDescription,
	}
}

/* =============== RESPONSES =============== */

type AppSettingResponse struct {
	SettingID          uuid.UUID `json:"setting_id"`
	SettingKey         string    `json:"setting_key"`
	SettingValue       string    `json:"setting_value"`
	SettingDescription *string   `json:"setting_description,omitempty"`
	SettingUpdatedAt   time.Time `json:"setting_updated_at"`
}

func FromModel(x m.AppSetting) AppSettingResponse {
	return AppSettingResponse{
		SettingID:          x.SettingID,
		SettingKey:         x.SettingKey,
		SettingValue:       x.SettingValue,
		SettingDescription: x.SettingDescription,
		SettingUpdatedAt:   x.SettingUpdatedAt,
	}
}

func FromModels(list []m.AppSetting) []AppSettingResponse {
	out := make([]AppSettingResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
