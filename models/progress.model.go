package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress keeps one row per (user, course). Every report fully
// replaces the previous state; no history is retained.
type CourseProgress struct {
	gorm.Model
	UserID             uint      `gorm:"not null;uniqueIndex:uniq_user_course,priority:1" json:"userId"`
	User               User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CourseID           int       `gorm:"not null;uniqueIndex:uniq_user_course,priority:2" json:"courseId"`
	WatchedTime        float64   `gorm:"default:0" json:"watchedTime"`
	VideoDuration      float64   `gorm:"default:0" json:"videoDuration"`
	ProgressPercentage int       `gorm:"default:0" json:"progressPercentage"`
	IsCompleted        bool      `gorm:"default:false" json:"isCompleted"`
	LastWatchedAt      time.Time `json:"lastWatchedAt"`
}

func (CourseProgress) TableName() string { return "course_progress" }
