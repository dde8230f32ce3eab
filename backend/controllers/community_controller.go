package controllers

import (
	"strconv"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommunityController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommunityController(db *gorm.DB, cfg *config.Config) *CommunityController {
	return &CommunityController{DB: db, Cfg: cfg}
}

type PostInput struct {
	PostType    string   `json:"post_type" validate:"required,oneof=share_art question poll"`
	Text        string   `json:"text"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	PollOptions []string `json:"poll_options" validate:"omitempty,min=2,dive,required"`
}

// CreatePost публикует новый пост в ленте сообщества
// @Summary Создание поста
// @Tags community
// @Accept json
// @Produce json
// @Success 201 {object} models.CommunityPost
// @Router /community/posts [post]
func (cc *CommunityController) CreatePost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if user.Banned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Banned users cannot post",
		})
	}

	var input PostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}
	if input.PostType == "poll" && len(input.PollOptions) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Polls need at least two options",
		})
	}
	if err := services.CheckContent(append([]string{input.Text}, input.PollOptions...)...); err != nil {
		return handleServiceError(c, err)
	}

	post := models.CommunityPost{
		UserID:   user.ID,
		PostType: input.PostType,
		Text:     input.Text,
		ImageURL: input.ImageURL,
	}
	for _, opt := range input.PollOptions {
		post.PollOptions = append(post.PollOptions, models.PollOption{Text: opt})
	}

	if err := cc.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created",
		"post":    post,
	})
}

type PostEditInput struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (cc *CommunityController) EditPost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var post models.CommunityPost
	if err := cc.DB.First(&post, postID).Error; err != nil {
		return notFoundOrStorage(c, err, "Post")
	}
	if post.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only edit your own posts",
		})
	}

	var input PostEditInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}
	if err := services.CheckContent(input.Text); err != nil {
		return handleServiceError(c, err)
	}

	if input.Text != "" {
		post.Text = input.Text
	}
	if input.ImageURL != "" {
		post.ImageURL = input.ImageURL
	}

	if err := cc.DB.Save(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update post",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Post updated",
		"post":    post,
	})
}

func (cc *CommunityController) DeletePost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var post models.CommunityPost
	if err := cc.DB.First(&post, postID).Error; err != nil {
		return notFoundOrStorage(c, err, "Post")
	}
	if post.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only delete your own posts",
		})
	}

	if err := cc.DB.Delete(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete post",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// GetPosts returns visible posts, newest first. Moderators also see hidden
// posts. Supports filter_type, filter_user, page and per_page query params.
func (cc *CommunityController) GetPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := cc.DB.Model(&models.CommunityPost{}).
		Preload("PollOptions").Preload("Likes").Preload("Comments")

	if !services.ModerationRoles.Contains(currentRole(c)) {
		query = query.Where("hidden = ?", false)
	}
	if t := c.Query("filter_type"); t != "" {
		query = query.Where("post_type = ?", t)
	}
	if u := c.Query("filter_user"); u != "" {
		userID, err := strconv.Atoi(u)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid filter_user",
			})
		}
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var posts []models.CommunityPost
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"posts":    posts,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

func (cc *CommunityController) GetPost(c *fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var post models.CommunityPost
	if err := cc.DB.Preload("PollOptions").Preload("Likes").
		Preload("Comments.Replies").
		First(&post, postID).Error; err != nil {
		return notFoundOrStorage(c, err, "Post")
	}

	if post.Hidden && !services.ModerationRoles.Contains(currentRole(c)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}

	return c.JSON(post)
}

func (cc *CommunityController) LikePost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	if err := services.LikePost(cc.DB, uint(postID), user); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post liked",
	})
}

func (cc *CommunityController) UnlikePost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	if err := services.UnlikePost(cc.DB, uint(postID), user); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post unliked",
	})
}

type CommentInput struct {
	Text            string `json:"text" validate:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

func (cc *CommunityController) CommentOnPost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if user.Banned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Banned users cannot comment",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var post models.CommunityPost
	if err := cc.DB.First(&post, postID).Error; err != nil {
		return notFoundOrStorage(c, err, "Post")
	}

	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := validate.Struct(input); err != nil {
		return validationError(c, err)
	}
	if err := services.CheckContent(input.Text); err != nil {
		return handleServiceError(c, err)
	}

	if input.ParentCommentID != nil {
		var parent models.CommunityComment
		if err := cc.DB.Where("id = ? AND post_id = ?", *input.ParentCommentID, postID).
			First(&parent).Error; err != nil {
			return notFoundOrStorage(c, err, "Parent comment")
		}
	}

	comment := models.CommunityComment{
		PostID:          uint(postID),
		UserID:          user.ID,
		Text:            input.Text,
		ParentCommentID: input.ParentCommentID,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added",
		"comment": comment,
	})
}

func (cc *CommunityController) EditComment(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment ID",
		})
	}

	var comment models.CommunityComment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		return notFoundOrStorage(c, err, "Comment")
	}
	if comment.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only edit your own comments",
		})
	}

	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment text is required",
		})
	}
	if err := services.CheckContent(input.Text); err != nil {
		return handleServiceError(c, err)
	}

	comment.Text = input.Text
	if err := cc.DB.Save(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update comment",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Comment updated",
		"comment": comment,
	})
}

func (cc *CommunityController) DeleteComment(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment ID",
		})
	}

	var comment models.CommunityComment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		return notFoundOrStorage(c, err, "Comment")
	}
	if comment.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only delete your own comments",
		})
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete comment",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}

func (cc *CommunityController) FollowUser(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	followeeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if uint(followeeID) == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot follow yourself",
		})
	}

	var followee models.User
	if err := cc.DB.First(&followee, followeeID).Error; err != nil {
		return notFoundOrStorage(c, err, "User")
	}

	var count int64
	if err := cc.DB.Model(&models.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", user.ID, followeeID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Already following this user",
		})
	}

	follow := models.UserFollow{FollowerID: user.ID, FolloweeID: uint(followeeID)}
	if err := cc.DB.Create(&follow).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not follow user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User followed",
	})
}

func (cc *CommunityController) UnfollowUser(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	followeeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	result := cc.DB.Where("follower_id = ? AND followee_id = ?", user.ID, followeeID).
		Delete(&models.UserFollow{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not unfollow user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You are not following this user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User unfollowed",
	})
}

type HideInput struct {
	Hide bool `json:"hide"`
}

// HidePost sets the post's visibility; an empty body hides it.
func (cc *CommunityController) HidePost(c *fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	input := HideInput{Hide: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
	}

	if err := services.SetPostHidden(cc.DB, uint(postID), input.Hide, currentRole(c)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post visibility updated",
		"hidden":  input.Hide,
	})
}

func (cc *CommunityController) ReportPost(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	if err := services.ReportPost(cc.DB, uint(postID), user); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post reported",
	})
}

type ReviewInput struct {
	Unhide bool `json:"unhide"`
}

// ReviewPost resolves a reported post: unhide it or keep it hidden.
func (cc *CommunityController) ReviewPost(c *fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var input ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := services.ReviewPost(cc.DB, uint(postID), input.Unhide, currentRole(c)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post reviewed",
	})
}

type BanInput struct {
	Banned bool `json:"banned"`
}

func (cc *CommunityController) BanUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	input := BanInput{Banned: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
	}

	if err := services.SetUserBanned(cc.DB, uint(userID), input.Banned, currentRole(c)); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User ban updated",
		"banned":  input.Banned,
	})
}
