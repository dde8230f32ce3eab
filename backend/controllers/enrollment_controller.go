package controllers

import (
	"strconv"

	"artschool/backend/config"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentController(db *gorm.DB, cfg *config.Config) *EnrollmentController {
	return &EnrollmentController{DB: db, Cfg: cfg}
}

func (ec *EnrollmentController) JoinCourse(c *fiber.Ctx) error {
	student := currentStudent(c, ec.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can join courses",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	if err := services.JoinCourse(ec.DB, student.ID, uint(courseID)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course joined",
	})
}

func (ec *EnrollmentController) UnjoinCourse(c *fiber.Ctx) error {
	student := currentStudent(c, ec.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can leave courses",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	if err := services.UnjoinCourse(ec.DB, student.ID, uint(courseID)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course left",
	})
}

// ToggleLesson flips the completion state of one lesson for the acting
// student and returns the recomputed course progress.
func (ec *EnrollmentController) ToggleLesson(c *fiber.Ctx) error {
	student := currentStudent(c, ec.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can track lessons",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	progress, err := services.ToggleLessonCompletion(ec.DB, student.ID, uint(lessonID))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Lesson toggled",
		"progress": progress,
	})
}

func (ec *EnrollmentController) RecomputeCourseProgress(c *fiber.Ctx) error {
	student := currentStudent(c, ec.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students have course progress",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	progress, err := services.ComputeCourseProgress(ec.DB, student.ID, uint(courseID))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"progress":  progress,
		"completed": progress == 100.0,
	})
}
