package controllers

import (
	"encoding/json"
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TracksController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTracksController(db *gorm.DB, cfg *config.Config) *TracksController {
	return &TracksController{DB: db, Cfg: cfg}
}

type TrackInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description"`
	Objectives  string `json:"objectives"`
	Outcomes    string `json:"outcomes"`
}

// CreateTrack создаёт новый учебный трек
// @Summary Создание трека
// @Tags tracks
// @Accept json
// @Produce json
// @Success 201 {object} models.Track
// @Router /tracks [post]
func (tc *TracksController) CreateTrack(c *fiber.Ctx) error {
	teacher := currentTeacher(c, tc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can create tracks",
		})
	}

	var input TrackInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	track := models.Track{
		Title:       input.Title,
		Description: input.Description,
		Objectives:  input.Objectives,
		Outcomes:    input.Outcomes,
		TeacherID:   teacher.ID,
	}
	if err := tc.DB.Create(&track).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create track",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Track created",
		"track":   track,
	})
}

func (tc *TracksController) GetAllTracks(c *fiber.Ctx) error {
	var tracks []models.Track
	if err := tc.DB.Find(&tracks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	return c.JSON(tracks)
}

// GetTrack returns the track with its courses in their stored order.
func (tc *TracksController) GetTrack(c *fiber.Ctx) error {
	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}

	var track models.Track
	if err := tc.DB.First(&track, trackID).Error; err != nil {
		return notFoundOrStorage(c, err, "Track")
	}

	courses, err := services.TrackCourses(tc.DB, uint(trackID))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"track":   track,
		"courses": courses,
	})
}

func (tc *TracksController) AddCourse(c *fiber.Ctx) error {
	teacher := currentTeacher(c, tc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	if err := services.AddCourseToTrack(tc.DB, uint(trackID), uint(courseID), teacher.ID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course added to track",
	})
}

type ReorderInput struct {
	CourseIDs []uint `json:"course_ids" validate:"required,min=1"`
}

func (tc *TracksController) ReorderCourses(c *fiber.Ctx) error {
	teacher := currentTeacher(c, tc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}

	var input ReorderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	if err := services.ReorderTrackCourses(tc.DB, uint(trackID), input.CourseIDs, teacher.ID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Track reordered",
	})
}

func (tc *TracksController) RemoveCourse(c *fiber.Ctx) error {
	teacher := currentTeacher(c, tc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	if err := services.RemoveCourseFromTrack(tc.DB, uint(trackID), uint(courseID), teacher.ID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course removed from track",
	})
}

func (tc *TracksController) JoinTrack(c *fiber.Ctx) error {
	student := currentStudent(c, tc.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can join tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}

	if err := services.JoinTrack(tc.DB, student.ID, uint(trackID)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Track joined",
	})
}

func (tc *TracksController) WithdrawTrack(c *fiber.Ctx) error {
	student := currentStudent(c, tc.DB)
	if student == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only students can leave tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}

	if err := services.WithdrawTrack(tc.DB, student.ID, uint(trackID)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Track left",
	})
}

type TrackFilesInput struct {
	Files []string `json:"files" validate:"required,min=1,dive,url"`
}

// AddTrackFiles appends download URLs to the track's file list.
func (tc *TracksController) AddTrackFiles(c *fiber.Ctx) error {
	teacher := currentTeacher(c, tc.DB)
	if teacher == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can edit tracks",
		})
	}

	trackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track ID",
		})
	}

	var input TrackFilesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	var track models.Track
	if err := tc.DB.First(&track, trackID).Error; err != nil {
		return notFoundOrStorage(c, err, "Track")
	}
	if track.TeacherID != teacher.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not authorized to edit this track",
		})
	}

	var files []string
	if len(track.DownloadableFiles) > 0 {
		if err := json.Unmarshal(track.DownloadableFiles, &files); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not read file list",
			})
		}
	}
	files = append(files, input.Files...)

	raw, err := json.Marshal(files)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode file list",
		})
	}
	track.DownloadableFiles = datatypes.JSON(raw)

	if err := tc.DB.Save(&track).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update track",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Files added",
		"files":   files,
	})
}
