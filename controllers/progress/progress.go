package progressController

import (
	"errors"
	"log"
	"math"
	"time"

	"workmate/database"
	"workmate/middleware"
	"workmate/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetAll returns every course's progress for the caller, keyed by course id.
// Courses without a row report zero so the training page can render the
// whole catalog.
func GetAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var rows []models.CourseProgress
	if err := database.Database.Db.Where("user_id = ?", user.ID).Find(&rows).Error; err != nil {
		log.Printf("Error loading progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load progress")
	}

	progress := make(map[int]int)
	watchTime := make(map[int]float64)
	videoDurations := make(map[int]float64)

	for _, id := range models.CatalogCourseIDs() {
		progress[id] = 0
		watchTime[id] = 0
		videoDurations[id] = 0
	}

	for _, row := range rows {
		progress[row.CourseID] = row.ProgressPercentage
		watchTime[row.CourseID] = row.WatchedTime
		if row.VideoDuration > 0 {
			videoDurations[row.CourseID] = row.VideoDuration
		}
	}

	return c.JSON(fiber.Map{
		"progress":       progress,
		"watchTime":      watchTime,
		"videoDurations": videoDurations,
	})
}

func GetCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	courseID := c.Locals("courseID").(int)

	var row models.CourseProgress
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, courseID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{
				"progress":      0,
				"watchTime":     0,
				"videoDuration": 0,
				"isCompleted":   false,
			})
		}
		log.Printf("Error loading course progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load progress")
	}

	return c.JSON(fiber.Map{
		"progress":      row.ProgressPercentage,
		"watchTime":     row.WatchedTime,
		"videoDuration": row.VideoDuration,
		"isCompleted":   row.IsCompleted,
	})
}

// Update upserts the caller's progress for one course. Each report fully
// supersedes the stored state (last write wins).
func Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	reqData := new(struct {
		CourseID           int     `json:"courseId"`
		WatchedTime        float64 `json:"watchedTime"`
		VideoDuration      float64 `json:"videoDuration"`
		ProgressPercentage int     `json:"progressPercentage"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	row := models.CourseProgress{
		UserID:             user.ID,
		CourseID:           reqData.CourseID,
		WatchedTime:        reqData.WatchedTime,
		VideoDuration:      reqData.VideoDuration,
		ProgressPercentage: reqData.ProgressPercentage,
		IsCompleted:        reqData.ProgressPercentage >= 100,
		LastWatchedAt:      time.Now(),
	}

	err := database.Database.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watched_time", "video_duration", "progress_percentage", "is_completed", "last_watched_at", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("Error upserting progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update progress")
	}

	return c.JSON(fiber.Map{"success": true})
}

// UpdateDuration records the probed video length without touching progress
func UpdateDuration(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	reqData := new(struct {
		CourseID int     `json:"courseId"`
		Duration float64 `json:"duration"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	row := models.CourseProgress{
		UserID:        user.ID,
		CourseID:      reqData.CourseID,
		VideoDuration: reqData.Duration,
		LastWatchedAt: time.Now(),
	}

	err := database.Database.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"video_duration", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("Error updating video duration: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update duration")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Reset zeroes out watched time and completion for one course
func Reset(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	courseID := c.Locals("courseID").(int)

	err := database.Database.Db.Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", user.ID, courseID).
		Updates(map[string]interface{}{
			"watched_time":        0,
			"progress_percentage": 0,
			"is_completed":        false,
		}).Error
	if err != nil {
		log.Printf("Error resetting progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reset progress")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Stats aggregates the caller's training activity. The counts are always
// derived from the rows, never cached.
func Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	db := database.Database.Db

	var stats struct {
		TotalCourses     int64
		CompletedCourses int64
		AvgProgress      float64
		TotalWatchTime   float64
	}
	err := db.Model(&models.CourseProgress{}).
		Where("user_id = ?", user.ID).
		Select("COUNT(*) AS total_courses, " +
			"COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_courses, " +
			"COALESCE(AVG(progress_percentage), 0) AS avg_progress, " +
			"COALESCE(SUM(watched_time), 0) AS total_watch_time").
		Scan(&stats).Error
	if err != nil {
		log.Printf("Error loading stats: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load stats")
	}

	var watchedThisWeek int64
	if err := db.Model(&models.CourseProgress{}).
		Where("user_id = ? AND last_watched_at >= ?", user.ID, now.BeginningOfWeek()).
		Count(&watchedThisWeek).Error; err != nil {
		log.Printf("Error counting weekly activity: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load stats")
	}

	return c.JSON(fiber.Map{
		"totalCourses":     stats.TotalCourses,
		"completedCourses": stats.CompletedCourses,
		"avgProgress":      int(math.Round(stats.AvgProgress)),
		"totalWatchTime":   stats.TotalWatchTime,
		"watchedThisWeek":  watchedThisWeek,
	})
}

// ListCourses serves the static catalog
func ListCourses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"courses": models.CourseCatalog})
}
