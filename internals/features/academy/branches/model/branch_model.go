// file: internals/features/academy/branches/model/branch_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	BranchID uuid.UUID `json:"branch_id" gorm:"column:branch_id;type:uuid;default:gen_random_uuid();primaryKey"`

	BranchCode string `json:"branch_code" gorm:"column:branch_code;type:varchar(20);not null;uniqueIndex"`
	BranchName string `json:"branch_name" gorm:"column:branch_name;type:varchar(120);not null"`

	BranchAddress *string `json:"branch_address" gorm:"column:branch_address;type:text"`
	BranchPhone   *string `json:"branch_phone"   gorm:"column:branch_phone;type:varchar(30)"`

	BranchIsActive bool `json:"branch_is_active" gorm:"column:branch_is_active;not null;default:true"`

	BranchCreatedAt time.Time      `json:"branch_created_at" gorm:"column:branch_created_at;type:timestamptz;not null;autoCreateTime"`
	BranchUpdatedAt time.Time      `json:"branch_updated_at" gorm:"column:branch_updated_at;type:timestamptz;not null;autoUpdateTime"`
	BranchDeletedAt gorm.DeletedAt `json:"-"                 gorm:"column:branch_deleted_at;index"`
}

func (Branch) TableName() string { return "branches" }
