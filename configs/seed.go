package configs

import (
	"log"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"golang.org/x/crypto/bcrypt"
)

// First-boot admin
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	return db.Create(&entity.Admin{Name: "Admin", UserID: admin.ID}).Error
}

// Seed default lookup/status values
func SeedLookups() error {
	db := DB()

	// Business
	db.FirstOrCreate(&entity.BusinessStatus{}, entity.BusinessStatus{StatusName: "Open"})
	db.FirstOrCreate(&entity.BusinessStatus{}, entity.BusinessStatus{StatusName: "Temporarily Closed"})
	db.FirstOrCreate(&entity.BusinessStatus{}, entity.BusinessStatus{StatusName: "Permanently Closed"})
	db.FirstOrCreate(&entity.BusinessCategory{}, entity.BusinessCategory{CategoryName: "Nutrition Club"})
	db.FirstOrCreate(&entity.BusinessCategory{}, entity.BusinessCategory{CategoryName: "Smoothie Bar"})
	db.FirstOrCreate(&entity.BusinessCategory{}, entity.BusinessCategory{CategoryName: "Juice Bar"})

	// Issue / Report
	db.FirstOrCreate(&entity.IssueType{}, entity.IssueType{TypeName: "Permanently Closed"})
	db.FirstOrCreate(&entity.IssueType{}, entity.IssueType{TypeName: "Wrong Address"})
	db.FirstOrCreate(&entity.IssueType{}, entity.IssueType{TypeName: "Duplicate Listing"})
	db.FirstOrCreate(&entity.IssueType{}, entity.IssueType{TypeName: "Inappropriate Content"})

	log.Println("lookup tables seeded")
	return nil
}
