// file: internals/features/academy/guardians/model/guardian_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guardian struct {
	GuardianID uuid.UUID `json:"guardian_id" gorm:"column:guardian_id;type:uuid;default:gen_random_uuid();primaryKey"`

	GuardianName  string  `json:"guardian_name"  gorm:"column:guardian_name;type:varchar(120);not null"`
	GuardianPhone string  `json:"guardian_phone" gorm:"column:guardian_phone;type:varchar(30);not null"`
	GuardianEmail *string `json:"guardian_email" gorm:"column:guardian_email;type:varchar(120)"`

	GuardianAddress  *string `json:"guardian_address"  gorm:"column:guardian_address;type:text"`
	GuardianRelation *string `json:"guardian_relation" gorm:"column:guardian_relation;type:varchar(40)"`

	GuardianIsActive bool `json:"guardian_is_active" gorm:"column:guardian_is_active;not null;default:true"`

	GuardianCreatedAt time.Time      `json:"guardian_created_at" gorm:"column:guardian_created_at;type:timestamptz;not null;autoCreateTime"`
	GuardianUpdatedAt time.Time      `json:"guardian_updated_at" gorm:"column:guardian_updated_at;type:timestamptz;not null;autoUpdateTime"`
	GuardianDeletedAt gorm.DeletedAt `json:"-"                   gorm:"column:guardian_deleted_at;index"`
}

func (Guardian) TableName() string { return "guardians" }
