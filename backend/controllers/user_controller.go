package controllers

import (
	"fmt"
	"log"
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"
	"artschool/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer utils.Mailer
}

func NewUserController(db *gorm.DB, cfg *config.Config, mailer utils.Mailer) *UserController {
	return &UserController{DB: db, Cfg: cfg, Mailer: mailer}
}

var userStatuses = map[string]bool{
	"Pre-Apply":   true,
	"Applied":     true,
	"Interviewed": true,
	"Accepted":    true,
	"Rejected":    true,
}

// GetUsers возвращает список всех пользователей
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	if currentRole(c) != services.RoleParent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only parents can list users",
		})
	}

	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(users)
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return notFoundOrStorage(c, err, "User")
	}
	return c.JSON(user)
}

// ApplyUser moves the acting user from Pre-Apply to Applied.
func (uc *UserController) ApplyUser(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if user.Status != "Pre-Apply" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Application already submitted",
		})
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", "Applied").Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Application submitted",
		"status":  "Applied",
	})
}

type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateUserStatus lets a parent move another user through the application
// pipeline. The user is notified by mail when the status changes.
func (uc *UserController) UpdateUserStatus(c *fiber.Ctx) error {
	if currentRole(c) != services.RoleParent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only parents can update user status",
		})
	}

	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var input StatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if !userStatuses[input.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return notFoundOrStorage(c, err, "User")
	}

	if user.Status != input.Status {
		if err := uc.DB.Model(&user).Update("status", input.Status).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update status",
			})
		}
		if user.Email != "" {
			body := fmt.Sprintf("Hi %s, your application status is now: %s", user.Username, input.Status)
			if err := uc.Mailer.Send(user.Email, "Application status update", body); err != nil {
				// Почтовая ошибка не должна откатывать смену статуса
				log.Printf("mailer: %v", err)
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Status updated",
		"status":  input.Status,
	})
}
