package services

import (
	"errors"

	"artschool/backend/models"

	"gorm.io/gorm"
)

func loadPost(tx *gorm.DB, postID uint) (*models.CommunityPost, error) {
	var post models.CommunityPost
	if err := tx.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post")
		}
		return nil, Storage(err)
	}
	return &post, nil
}

// SetPostHidden sets the post's hidden flag directly. Moderator roles only.
func SetPostHidden(db *gorm.DB, postID uint, hidden bool, actor Role) error {
	if err := Authorize(actor, ModerationRoles); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPost(tx, postID); err != nil {
			return err
		}
		if err := tx.Model(&models.CommunityPost{}).
			Where("id = ?", postID).
			Update("hidden", hidden).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// ReportPost hides the post pending review. Any non-banned user may report.
func ReportPost(db *gorm.DB, postID uint, actor *models.User) error {
	if actor.Banned {
		return Forbidden("banned users cannot report posts")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPost(tx, postID); err != nil {
			return err
		}
		if err := tx.Model(&models.CommunityPost{}).
			Where("id = ?", postID).
			Update("hidden", true).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// ReviewPost closes a report: unhide=true restores the post, unhide=false
// keeps it hidden.
func ReviewPost(db *gorm.DB, postID uint, unhide bool, actor Role) error {
	return SetPostHidden(db, postID, !unhide, actor)
}

func SetUserBanned(db *gorm.DB, userID uint, banned bool, actor Role) error {
	if err := Authorize(actor, ModerationRoles); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("user")
			}
			return Storage(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("banned", banned).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// LikePost records the actor's like; liking twice is a conflict.
func LikePost(db *gorm.DB, postID uint, actor *models.User) error {
	if actor.Banned {
		return Forbidden("banned users cannot like posts")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPost(tx, postID); err != nil {
			return err
		}

		var existing models.CommunityPostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, actor.ID).
			First(&existing).Error
		if err == nil {
			return Conflict("already liked")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Storage(err)
		}

		like := models.CommunityPostLike{PostID: postID, UserID: actor.ID}
		if err := tx.Create(&like).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

func UnlikePost(db *gorm.DB, postID uint, actor *models.User) error {
	if actor.Banned {
		return Forbidden("banned users cannot unlike posts")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadPost(tx, postID); err != nil {
			return err
		}

		var existing models.CommunityPostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, actor.ID).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("like")
			}
			return Storage(err)
		}

		if err := tx.Where("post_id = ? AND user_id = ?", postID, actor.ID).
			Delete(&models.CommunityPostLike{}).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

var courseRequestStatuses = map[string]bool{
	"idle":       true,
	"working on": true,
	"launched":   true,
}

// OptInCourseRequest claims the request for the teacher. The claim is a
// guarded update on opted_by IS NULL, so two racing teachers cannot both win.
func OptInCourseRequest(db *gorm.DB, requestID, teacherID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CourseRequest{}).
			Where("id = ? AND opted_by IS NULL", requestID).
			Updates(map[string]interface{}{
				"opted_by": teacherID,
				"status":   "working on",
			})
		if res.Error != nil {
			return Storage(res.Error)
		}
		if res.RowsAffected == 1 {
			return nil
		}

		var request models.CourseRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("course request")
			}
			return Storage(err)
		}
		return Conflict("course request already opted in by another teacher")
	})
}

// OptOutCourseRequest releases the claim and resets the request to idle.
func OptOutCourseRequest(db *gorm.DB, requestID, teacherID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		request, err := loadClaimedRequest(tx, requestID, teacherID)
		if err != nil {
			return err
		}
		if err := tx.Model(request).
			Updates(map[string]interface{}{
				"opted_by": nil,
				"status":   "idle",
			}).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// UpdateCourseRequestStatus moves the request between idle, working on and
// launched. Only the claim holder may do this.
func UpdateCourseRequestStatus(db *gorm.DB, requestID, teacherID uint, status string) error {
	if !courseRequestStatuses[status] {
		return BadRequest("invalid status")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		request, err := loadClaimedRequest(tx, requestID, teacherID)
		if err != nil {
			return err
		}
		if err := tx.Model(request).Update("status", status).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

func loadClaimedRequest(tx *gorm.DB, requestID, teacherID uint) (*models.CourseRequest, error) {
	var request models.CourseRequest
	if err := tx.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("course request")
		}
		return nil, Storage(err)
	}
	if request.OptedBy == nil || *request.OptedBy != teacherID {
		return nil, Forbidden("you have not opted in to work on this course")
	}
	return &request, nil
}
