package controllers

import (
	"errors"

	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

func currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}

func currentRole(c *fiber.Ctx) services.Role {
	user := currentUser(c)
	if user == nil {
		return ""
	}
	role, err := services.ParseRole(user.Role)
	if err != nil {
		return ""
	}
	return role
}

// currentStudent resolves the acting user's student record, or nil if the
// user is not a student.
func currentStudent(c *fiber.Ctx, db *gorm.DB) *models.Student {
	user := currentUser(c)
	if user == nil || user.Role != string(services.RoleStudent) {
		return nil
	}
	var student models.Student
	if err := db.Where("user_id = ?", user.ID).First(&student).Error; err != nil {
		return nil
	}
	return &student
}

func currentTeacher(c *fiber.Ctx, db *gorm.DB) *models.Teacher {
	user := currentUser(c)
	if user == nil || user.Role != string(services.RoleTeacher) {
		return nil
	}
	var teacher models.Teacher
	if err := db.Where("user_id = ?", user.ID).First(&teacher).Error; err != nil {
		return nil
	}
	return &teacher
}

// handleServiceError maps the service error taxonomy to HTTP statuses.
func handleServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindForbidden:
		status = fiber.StatusForbidden
	case services.KindConflict:
		status = fiber.StatusConflict
	case services.KindBadRequest:
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func notFoundOrStorage(c *fiber.Ctx, err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": resource + " not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Could not query database",
	})
}

func validationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": details,
	})
}
