package controllers

import (
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ArtController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewArtController(db *gorm.DB, cfg *config.Config) *ArtController {
	return &ArtController{DB: db, Cfg: cfg}
}

type ArtInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Type     string `json:"type" validate:"omitempty,oneof=gallery course portfolio"`
	CourseID *uint  `json:"course_id"`
	MediaURL string `json:"media_url" validate:"required,url"`
}

// UploadArt регистрирует работу и начисляет баллы студенту
// @Summary Загрузка работы
// @Tags art
// @Accept json
// @Produce json
// @Success 201 {object} models.Art
// @Router /art [post]
func (ac *ArtController) UploadArt(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input ArtInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	if input.CourseID != nil {
		var course models.Course
		if err := ac.DB.First(&course, *input.CourseID).Error; err != nil {
			return notFoundOrStorage(c, err, "Course")
		}
	}

	art := models.Art{
		Name:     input.Name,
		Type:     input.Type,
		UserID:   user.ID,
		CourseID: input.CourseID,
		MediaURL: input.MediaURL,
	}

	student := currentStudent(c, ac.DB)
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&art).Error; err != nil {
			return err
		}
		if student != nil {
			return services.AwardPoints(tx, student.ID, ac.Cfg.ArtUploadPoints)
		}
		return nil
	})
	if err != nil {
		if services.KindOf(err) != services.KindStorage {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save artwork",
		})
	}

	resp := fiber.Map{
		"message": "Artwork uploaded",
		"art":     art,
	}
	if student != nil {
		resp["points_awarded"] = ac.Cfg.ArtUploadPoints
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (ac *ArtController) GetAllArt(c *fiber.Ctx) error {
	var artworks []models.Art
	if err := ac.DB.Order("created_at DESC").Find(&artworks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(artworks)
}

func (ac *ArtController) GetArtByUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var artworks []models.Art
	if err := ac.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&artworks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(artworks)
}

func (ac *ArtController) GetArtByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var artworks []models.Art
	if err := ac.DB.Where("course_id = ?", courseID).
		Order("created_at DESC").Find(&artworks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(artworks)
}
