// file: internals/features/academy/branches/dto/branch_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/branches/model"
)

/* =============== REQUESTS =============== */

type CreateBranchRequest struct {
	BranchCode    string  `json:"branch_code"    validate:"required,min=2,max=20"`
	BranchName    string  `json:"branch_name"    validate:"required,min=2,max=120"`
	BranchAddress *string `json:"branch_address" validate:"omitempty,max=500"`
	BranchPhone   *string `json:"branch_phone"   validate:"omitempty,max=30"`
}

func (r CreateBranchRequest) ToModel() *m.Branch {
	return &m.Branch{
		BranchCode:     r.BranchCode,
		BranchName:     r.BranchName,
		BranchAddress:  r.BranchAddress,
		BranchPhone:    r.BranchPhone,
		BranchIsActive: true,
	}
}

type UpdateBranchRequest struct {
	BranchName     *string `json:"branch_name"      validate:"omitempty,min=2,max=120"`
	BranchAddress  *string `json:"branch_address"   validate:"omitempty,max=500"`
	BranchPhone    *string `json:"branch_phone"     validate:"omitempty,max=30"`
	BranchIsActive *bool   `json:"branch_is_active" validate:"omitempty"`
}

// ApplyTo mutates only the fields present in the request.
func (r UpdateBranchRequest) ApplyTo(b *m.Branch) {
	if r.BranchName != nil {
		b.BranchName = *r.BranchName
	}
	if r.BranchAddress != nil {
		b.BranchAddress = r.BranchAddress
	}
	if r.BranchPhone != nil {
		b.BranchPhone = r.BranchPhone
	}
	if r.BranchIsActive != nil {
		b.BranchIsActive = *r.BranchIsActive
	}
}

/* =============== RESPONSES =============== */

type BranchResponse struct {
	BranchID       uuid.UUID `json:"branch_id"`
	BranchCode     string    `json:"branch_code"`
	BranchName     string    `json:"branch_name"`
	BranchAddress  *string   `json:"branch_address,omitempty"`
	BranchPhone    *string   `json:"branch_phone,omitempty"`
	BranchIsActive bool      `json:"branch_is_active"`
	BranchCreatedAt time.Time `json:"branch_created_at"`
	BranchUpdatedAt time.Time `json:"branch_updated_at"`
}

func FromModel(b m.Branch) BranchResponse {
	return BranchResponse{
		BranchID:        b.BranchID,
		BranchCode:      b.BranchCode,
		BranchName:      b.BranchName,
		BranchAddress:   b.BranchAddress,
		BranchPhone:     b.BranchPhone,
		BranchIsActive:  b.BranchIsActive,
		BranchCreatedAt: b.BranchCreatedAt,
		BranchUpdatedAt: b.BranchUpdatedAt,
	}
}

func FromModels(list []m.Branch) []BranchResponse {
	out := make([]BranchResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
