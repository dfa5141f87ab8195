package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the repositories rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&offerModel{},
		&reservationModel{},
		&paymentModel{},
		&overrideAuditModel{},
	)
}
