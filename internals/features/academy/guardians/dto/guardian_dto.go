// file: internals/features/academy/guardians/dto/guardian_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/guardians/model"
)

/* =============== REQUESTS =============== */

type CreateGuardianRequest struct {
	GuardianName     string  `json:"guardian_name"     validate:"required,min=2,max=120"`
	GuardianPhone    string  `json:"guardian_phone"    validate:"required,min=5,max=30"`
	GuardianEmail    *string `json:"guardian_email"    validate:"omitempty,email,max=120"`
	GuardianAddress  *string `json:"guardian_address"  validate:"omitempty,max=500"`
	GuardianRelation *string `json:"guardian_relation" validate:"omitempty,max=40"`
}

func (r CreateGuardianRequest) ToModel() *m.Guardian {
	return &m.Guardian{
		GuardianName:     r.GuardianName,
		GuardianPhone:    r.GuardianPhone,
		GuardianEmail:    r.GuardianEmail,
		GuardianAddress:  r.GuardianAddress,
		GuardianRelation: r.GuardianRelation,
		GuardianIsActive: true,
	}
}

type UpdateGuardianRequest struct {
	GuardianName     *string `json:"guardian_name"      validate:"omitempty,min=2,max=120"`
	GuardianPhone    *string `json:"guardian_phone"     validate:"omitempty,min=5,max=30"`
	GuardianEmail    *string `json:"guardian_email"     validate:"omitempty,email,max=120"`
	GuardianAddress  *string `json:"guardian_address"   validate:"omitempty,max=500"`
	GuardianRelation *string `json:"guardian_relation"  validate:"omitempty,max=40"`
	GuardianIsActive *bool   `json:"guardian_is_active" validate:"omitempty"`
}

func (r UpdateGuardianRequest) ApplyTo(g *m.Guardian) {
	if r.GuardianName != nil {
		g.GuardianName = *r.GuardianName
	}
	if r.GuardianPhone != nil {
		g.GuardianPhone = *r.GuardianPhone
	}
	if r.GuardianEmail != nil {
		g.GuardianEmail = r.GuardianEmail
	}
	if r.GuardianAddress != nil {
		g.GuardianAddress = r.GuardianAddress
	}
	if r.GuardianRelation != nil {
		g.GuardianRelation = r.GuardianRelation
	}
	if r.GuardianIsActive != nil {
		g.GuardianIsActive = *r.GuardianIsActive
	}
}

/* =============== RESPONSES =============== */

type GuardianResponse struct {
	GuardianID        uuid.UUID `json:"guardian_id"`
	GuardianName      string    `json:"guardian_name"`
	GuardianPhone     string    `json:"guardian_phone"`
	GuardianEmail     *string   `json:"guardian_email,omitempty"`
	GuardianAddress   *string   `json:"guardian_address,omitempty"`
	GuardianRelation  *string   `json:"guardian_relation,omitempty"`
	GuardianIsActive  bool      `json:"guardian_is_active"`
	GuardianCreatedAt time.Time `json:"guardian_created_at"`
	GuardianUpdatedAt time.Time `json:"guardian_updated_at"`
}

func FromModel(g m.Guardian) GuardianResponse {
	return GuardianResponse{
		GuardianID:        g.GuardianID,
		GuardianName:      g.GuardianName,
		GuardianPhone:     g.GuardianPhone,
		GuardianEmail:     g.GuardianEmail,
		GuardianAddress:   g.GuardianAddress,
		GuardianRelation:  g.GuardianRelation,
		GuardianIsActive:  g.GuardianIsActive,
		GuardianCreatedAt: g.GuardianCreatedAt,
		GuardianUpdatedAt: g.GuardianUpdatedAt,
	}
}

func FromModels(list []m.Guardian) []GuardianResponse {
	out := make([]GuardianResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
