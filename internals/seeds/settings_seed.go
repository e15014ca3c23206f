// file: internals/seeds/settings_seed.go
package seeds

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingModel "akademiku_backend/internals/features/finance/settings/model"
	paymentService "akademiku_backend/internals/features/finance/payments/service"
)

func strptr(s string) *string { return &s }

// EnsureDefaultSettings inserts the known runtime settings if absent.
// Existing rows keep their values (DoNothing on conflict).
func EnsureDefaultSettings(db *gorm.DB) {
	defaults := []settingModel.AppSetting{
		{
			SettingKey:         paymentService.KeyGracePeriodDays,
			SettingValue:       "5",
			SettingDescription: strptr("Days past due before a late fee applies"),
		},
		{
			SettingKey:         paymentService.KeyLateFeePercentage,
			SettingValue:       "10",
			SettingDescription: strptr("Late fee as a percentage of the payment amount"),
		},
		{
			SettingKey:         paymentService.KeyReceiptRequired,
			SettingValue:       "false",
			SettingDescription: strptr("Require an attached receipt file before marking as paid"),
		},
		{
			SettingKey:         paymentService.KeyReceiptBaseURL,
			SettingValue:       "",
			SettingDescription: strptr("Base URL prepended to relative receipt file paths"),
		},
	}

	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoNothing: true,
		}).
		Create(&defaults).Error; err != nil {
		log.Printf("[WARN] Failed to seed default settings: %v", err)
		return
	}
	log.Println("✅ Default settings seeded")
}
