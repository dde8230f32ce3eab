package routes

import (
	"artschool/backend/config"
	"artschool/backend/controllers"
	"artschool/backend/middleware"
	"artschool/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer utils.Mailer) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg, mailer)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)
	app.Post("/api/auth/password-reset/request", authController.PasswordResetRequest)
	app.Post("/api/auth/password-reset", authController.ResetPassword)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg, mailer)
	users := app.Group("/api/users", authMiddleware)
	users.Get("/", userController.GetUsers)
	users.Get("/:id", userController.GetUser)
	users.Post("/apply", userController.ApplyUser)
	users.Put("/:id/status", userController.UpdateUserStatus)

	// Profile routes
	profileController := controllers.NewProfileController(db, cfg)
	app.Get("/api/profile", authMiddleware, profileController.GetProfile)
	app.Put("/api/profile", authMiddleware, profileController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	enrollmentController := controllers.NewEnrollmentController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetAllCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Put("/:id", coursesController.EditCourse)
	courses.Get("/:id/lessons", coursesController.GetCourseLessons)
	courses.Post("/:id/lessons", coursesController.AddLesson)
	courses.Put("/:id/lessons/:lessonId", coursesController.EditLesson)
	courses.Post("/:id/join", enrollmentController.JoinCourse)
	courses.Delete("/:id/join", enrollmentController.UnjoinCourse)
	courses.Post("/:id/progress", enrollmentController.RecomputeCourseProgress)

	// Lesson progress
	app.Post("/api/lessons/:id/toggle", authMiddleware, enrollmentController.ToggleLesson)

	// Tracks routes
	tracksController := controllers.NewTracksController(db, cfg)
	tracks := app.Group("/api/tracks", authMiddleware)
	tracks.Get("/", tracksController.GetAllTracks)
	tracks.Post("/", tracksController.CreateTrack)
	tracks.Get("/:id", tracksController.GetTrack)
	tracks.Post("/:id/courses/:courseId", tracksController.AddCourse)
	tracks.Put("/:id/courses", tracksController.ReorderCourses)
	tracks.Delete("/:id/courses/:courseId", tracksController.RemoveCourse)
	tracks.Post("/:id/join", tracksController.JoinTrack)
	tracks.Delete("/:id/join", tracksController.WithdrawTrack)
	tracks.Post("/:id/files", tracksController.AddTrackFiles)

	// Community routes
	communityController := controllers.NewCommunityController(db, cfg)
	community := app.Group("/api/community", authMiddleware)
	community.Get("/posts", communityController.GetPosts)
	community.Post("/posts", communityController.CreatePost)
	community.Get("/posts/:id", communityController.GetPost)
	community.Put("/posts/:id", communityController.EditPost)
	community.Delete("/posts/:id", communityController.DeletePost)
	community.Post("/posts/:id/like", communityController.LikePost)
	community.Delete("/posts/:id/like", communityController.UnlikePost)
	community.Post("/posts/:id/comments", communityController.CommentOnPost)
	community.Put("/posts/:id/comments/:commentId", communityController.EditComment)
	community.Delete("/posts/:id/comments/:commentId", communityController.DeleteComment)
	community.Post("/posts/:id/hide", communityController.HidePost)
	community.Post("/posts/:id/report", communityController.ReportPost)
	community.Post("/posts/:id/review", communityController.ReviewPost)
	community.Post("/users/:id/follow", communityController.FollowUser)
	community.Delete("/users/:id/follow", communityController.UnfollowUser)
	community.Post("/users/:id/ban", communityController.BanUser)

	// Course request routes
	courseRequestController := controllers.NewCourseRequestController(db, cfg)
	requests := app.Group("/api/course-requests", authMiddleware)
	requests.Get("/", courseRequestController.GetAllRequests)
	requests.Post("/", courseRequestController.CreateRequest)
	requests.Post("/:id/upvote", courseRequestController.Upvote)
	requests.Post("/:id/downvote", courseRequestController.Downvote)
	requests.Post("/:id/opt-in", courseRequestController.OptIn)
	requests.Post("/:id/opt-out", courseRequestController.OptOut)
	requests.Put("/:id/status", courseRequestController.UpdateStatus)

	// Art routes
	artController := controllers.NewArtController(db, cfg)
	art := app.Group("/api/art", authMiddleware)
	art.Get("/", artController.GetAllArt)
	art.Post("/", artController.UploadArt)
	art.Get("/user/:id", artController.GetArtByUser)
	art.Get("/course/:id", artController.GetArtByCourse)
}
