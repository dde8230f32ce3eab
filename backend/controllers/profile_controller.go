package controllers

import (
	"time"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProfileController(db *gorm.DB, cfg *config.Config) *ProfileController {
	return &ProfileController{DB: db, Cfg: cfg}
}

// GetProfile возвращает профиль текущего пользователя в зависимости от роли
// @Summary Профиль пользователя
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	switch currentRole(c) {
	case services.RoleStudent:
		var student models.Student
		if err := pc.DB.Preload("JoinedCourses").Preload("JoinedTracks").
			Preload("CourseProgress").
			Where("user_id = ?", user.ID).First(&student).Error; err != nil {
			return notFoundOrStorage(c, err, "Student profile")
		}
		return c.JSON(fiber.Map{
			"user":    user,
			"student": student,
		})
	case services.RoleTeacher:
		var teacher models.Teacher
		if err := pc.DB.Where("user_id = ?", user.ID).First(&teacher).Error; err != nil {
			return notFoundOrStorage(c, err, "Teacher profile")
		}
		var courses []models.Course
		if err := pc.DB.Where("instructor_id = ?", teacher.ID).Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}
		return c.JSON(fiber.Map{
			"user":    user,
			"teacher": teacher,
			"courses": courses,
		})
	case services.RoleParent:
		var parent models.Parent
		if err := pc.DB.Preload("Children").
			Where("user_id = ?", user.ID).First(&parent).Error; err != nil {
			return notFoundOrStorage(c, err, "Parent profile")
		}
		return c.JSON(fiber.Map{
			"user":   user,
			"parent": parent,
		})
	}

	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "Unknown role",
	})
}

type StudentProfileInput struct {
	ProfilePic  string `json:"profile_pic"`
	Bio         string `json:"bio"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	SkillLevel  string `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type TeacherProfileInput struct {
	ProfilePic string `json:"profile_pic"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	City       string `json:"city"`
	State      string `json:"state"`
	Bio        string `json:"bio"`
	Expertise  string `json:"expertise"`
}

type ParentProfileInput struct {
	ProfilePic string `json:"profile_pic"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// UpdateProfile applies partial updates to the role-specific profile record.
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	switch currentRole(c) {
	case services.RoleStudent:
		return pc.updateStudentProfile(c, user)
	case services.RoleTeacher:
		return pc.updateTeacherProfile(c, user)
	case services.RoleParent:
		return pc.updateParentProfile(c, user)
	}

	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "Unknown role",
	})
}

func (pc *ProfileController) updateStudentProfile(c *fiber.Ctx, user *models.User) error {
	var input StudentProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	var student models.Student
	if err := pc.DB.Where("user_id = ?", user.ID).First(&student).Error; err != nil {
		return notFoundOrStorage(c, err, "Student profile")
	}

	if input.ProfilePic != "" {
		student.ProfilePic = input.ProfilePic
	}
	if input.Bio != "" {
		student.Bio = input.Bio
	}
	if input.SkillLevel != "" {
		student.SkillLevel = input.SkillLevel
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date of birth, expected YYYY-MM-DD",
			})
		}
		student.DateOfBirth = &dob
	}

	if err := pc.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"student": student,
	})
}

func (pc *ProfileController) updateTeacherProfile(c *fiber.Ctx, user *models.User) error {
	var input TeacherProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var teacher models.Teacher
	if err := pc.DB.Where("user_id = ?", user.ID).First(&teacher).Error; err != nil {
		return notFoundOrStorage(c, err, "Teacher profile")
	}

	if input.ProfilePic != "" {
		teacher.ProfilePic = input.ProfilePic
	}
	if input.FirstName != "" {
		teacher.FirstName = input.FirstName
	}
	if input.LastName != "" {
		teacher.LastName = input.LastName
	}
	if input.City != "" {
		teacher.City = input.City
	}
	if input.State != "" {
		teacher.State = input.State
	}
	if input.Bio != "" {
		teacher.Bio = input.Bio
	}
	if input.Expertise != "" {
		teacher.Expertise = input.Expertise
	}

	if err := pc.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"teacher": teacher,
	})
}

func (pc *ProfileController) updateParentProfile(c *fiber.Ctx, user *models.User) error {
	var input ParentProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var parent models.Parent
	if err := pc.DB.Where("user_id = ?", user.ID).First(&parent).Error; err != nil {
		return notFoundOrStorage(c, err, "Parent profile")
	}

	if input.ProfilePic != "" {
		parent.ProfilePic = input.ProfilePic
	}
	if input.FirstName != "" {
		parent.FirstName = input.FirstName
	}
	if input.LastName != "" {
		parent.LastName = input.LastName
	}
	if input.City != "" {
		parent.City = input.City
	}
	if input.State != "" {
		parent.State = input.State
	}

	if err := pc.DB.Save(&parent).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"parent":  parent,
	})
}
