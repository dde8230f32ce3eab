package services

import (
	"artschool/backend/models"

	"gorm.io/gorm"
)

// AwardPoints adds amount to the student's points counter. Points only ever
// accrue; a negative amount is a caller bug.
func AwardPoints(db *gorm.DB, studentID uint, amount int) error {
	if amount < 0 {
		return BadRequest("point award cannot be negative")
	}

	res := db.Model(&models.Student{}).
		Where("id = ?", studentID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("student")
	}
	return nil
}
