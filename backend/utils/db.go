package utils

import (
	"fmt"

	"artschool/backend/config"
	"artschool/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every model. The join model
// TrackCourse migrates after Track so its order column is added to the
// many2many table GORM creates.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.UserFollow{},
		&models.Student{},
		&models.Parent{},
		&models.Teacher{},
		&models.Course{},
		&models.Lesson{},
		&models.Art{},
		&models.StudentCourseProgress{},
		&models.Track{},
		&models.TrackCourse{},
		&models.CommunityPost{},
		&models.PollOption{},
		&models.CommunityComment{},
		&models.CommunityPostLike{},
		&models.CourseRequest{},
	)
}
