package configs

import (
	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{}, &entity.Admin{},
		&entity.BusinessCategory{}, &entity.BusinessStatus{}, &entity.Business{},
		&entity.Claim{}, &entity.ClaimDocument{}, &entity.ClaimMenuItem{},
		&entity.VerificationChannel{},
		&entity.MenuItem{},
		&entity.Review{},
		&entity.Promotion{},
		&entity.IssueType{}, &entity.Report{},
		&entity.RewardCard{},
		&entity.Notification{},
	)
}
