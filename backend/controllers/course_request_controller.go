package controllers

import (
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseRequestController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseRequestController(db *gorm.DB, cfg *config.Config) *CourseRequestController {
	return &CourseRequestController{DB: db, Cfg: cfg}
}

type CourseRequestInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description"`
}

func (rc *CourseRequestController) CreateRequest(c *fiber.Ctx) error {
	student := currentStudent(c, rc.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can request courses",
		})
	}

	var input CourseRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	request := models.CourseRequest{
		Title:       input.Title,
		Description: input.Description,
		RequestedBy: student.ID,
		Status:      "idle",
	}
	if err := rc.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course request created",
		"request": request,
	})
}

func (rc *CourseRequestController) GetAllRequests(c *fiber.Ctx) error {
	var requests []models.CourseRequest
	if err := rc.DB.Order("upvotes - downvotes DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(requests)
}

func (rc *CourseRequestController) vote(c *fiber.Ctx, column string) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	result := rc.DB.Model(&models.CourseRequest{}).
		Where("id = ?", requestID).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record vote",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course request not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Vote recorded",
	})
}

func (rc *CourseRequestController) Upvote(c *fiber.Ctx) error {
	return rc.vote(c, "upvotes")
}

func (rc *CourseRequestController) Downvote(c *fiber.Ctx) error {
	return rc.vote(c, "downvotes")
}

// OptIn claims a course request for the acting teacher. Only one teacher can
// hold the claim at a time.
func (rc *CourseRequestController) OptIn(c *fiber.Ctx) error {
	teacher := currentTeacher(c, rc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can opt in to course requests",
		})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	if err := services.OptInCourseRequest(rc.DB, uint(requestID), teacher.ID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Opted in to course request",
	})
}

func (rc *CourseRequestController) OptOut(c *fiber.Ctx) error {
	teacher := currentTeacher(c, rc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can opt out of course requests",
		})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	if err := services.OptOutCourseRequest(rc.DB, uint(requestID), teacher.ID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Opted out of course request",
	})
}

func (rc *CourseRequestController) UpdateStatus(c *fiber.Ctx) error {
	teacher := currentTeacher(c, rc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can update course request status",
		})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	var input StatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := services.UpdateCourseRequestStatus(rc.DB, uint(requestID), teacher.ID, input.Status); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Status updated",
		"status":  input.Status,
	})
}
