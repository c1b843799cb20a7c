package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&Gig{},
		&Rating{},
		&Order{},
		&Chat{},
		&Message{},
	)
}
