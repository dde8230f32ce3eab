package controllers

import (
	"encoding/json"
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

type CourseInput struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description"`
	Subject     string          `json:"subject"`
	SkillLevel  string          `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Type        string          `json:"type"`
	Length      string          `json:"length"`
	IntroVideo  string          `json:"intro_video"`
	Tips        string          `json:"tips"`
	Terms       string          `json:"terms"`
	Materials   json.RawMessage `json:"materials"`
	Files       json.RawMessage `json:"files"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	teacher := currentTeacher(c, cc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can create courses",
		})
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		Subject:      input.Subject,
		SkillLevel:   input.SkillLevel,
		Type:         input.Type,
		InstructorID: teacher.ID,
		Length:       input.Length,
		IntroVideo:   input.IntroVideo,
		Tips:         input.Tips,
		Terms:        input.Terms,
		Materials:    datatypes.JSON(input.Materials),
		Files:        datatypes.JSON(input.Files),
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) EditCourse(c *fiber.Ctx) error {
	teacher := currentTeacher(c, cc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit courses",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return notFoundOrStorage(c, err, "Course")
	}

	if course.InstructorID != teacher.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not authorized to edit this course",
		})
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Subject != "" {
		course.Subject = input.Subject
	}
	if input.SkillLevel != "" {
		course.SkillLevel = input.SkillLevel
	}
	if input.Type != "" {
		course.Type = input.Type
	}
	if input.Length != "" {
		course.Length = input.Length
	}
	if input.IntroVideo != "" {
		course.IntroVideo = input.IntroVideo
	}
	if input.Tips != "" {
		course.Tips = input.Tips
	}
	if input.Terms != "" {
		course.Terms = input.Terms
	}
	if input.Materials != nil {
		course.Materials = datatypes.JSON(input.Materials)
	}
	if input.Files != nil {
		course.Files = datatypes.JSON(input.Files)
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update course",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (cc *CoursesController) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Preload("Lessons").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(courses)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons").Preload("StudentWork").
		First(&course, courseID).Error; err != nil {
		return notFoundOrStorage(c, err, "Course")
	}

	return c.JSON(course)
}

type LessonInput struct {
	Title string `json:"title" validate:"required,max=100"`
	URL   string `json:"url" validate:"required,url"`
}

func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	teacher := currentTeacher(c, cc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can add lessons",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return notFoundOrStorage(c, err, "Course")
	}
	if course.InstructorID != teacher.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not authorized to edit this course",
		})
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	lesson := models.Lesson{
		CourseID: uint(courseID),
		Title:    input.Title,
		URL:      input.URL,
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lesson",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lesson added",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) EditLesson(c *fiber.Ctx) error {
	teacher := currentTeacher(c, cc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit lessons",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return notFoundOrStorage(c, err, "Course")
	}
	if course.InstructorID != teacher.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not authorized to edit this course",
		})
	}

	var lesson models.Lesson
	if err := cc.DB.Where("id = ? AND course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return notFoundOrStorage(c, err, "Lesson")
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.URL != "" {
		lesson.URL = input.URL
	}

	if err := cc.DB.Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lesson",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lesson updated",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) GetCourseLessons(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var lessons []models.Lesson
	if err := cc.DB.Where("course_id = ?", courseID).Find(&lessons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(lessons)
}
