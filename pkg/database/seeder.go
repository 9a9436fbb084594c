package database

import (
	"log"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/internal/utils"

	"gorm.io/gorm"
)

func SeedRolesAndAdmin() {
	// Seed Roles
	roles := []string{models.RoleAdmin, models.RoleStaff, models.RoleDistributor}
	for _, r := range roles {
		var role models.Role
		if err := DB.FirstOrCreate(&role, models.Role{Name: r}).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", r, err)
		}
	}

	// Seed Admin User
	var adminRole models.Role
	DB.Where("name = ?", models.RoleAdmin).First(&adminRole)

	adminUsername := config.AppConfig.Defaults.AdminUsername
	if adminUsername == "" {
		adminUsername = "admin"
	}

	var adminUser models.User
	if err := DB.Where("username = ?", adminUsername).First(&adminUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashedPassword, _ := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			admin := models.User{
				Username:     adminUsername,
				PasswordHash: hashedPassword,
				RoleID:       adminRole.ID,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin user: %v", err)
			} else {
				log.Println("Admin user seeded successfully.")
			}
		}
	}
}
