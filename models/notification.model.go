package models

import (
	"gorm.io/gorm"
)

// Notification types. Anything else is coerced to "info" on create.
var AllowedNotificationTypes = map[string]bool{
	"info":    true,
	"success": true,
	"warning": true,
	"error":   true,
}

const DefaultNotificationType = "info"

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"userId"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"default:'info'" json:"type"`
	IsRead  bool   `gorm:"default:false;index" json:"read"`
}

func (Notification) TableName() string { return "notifications" }
