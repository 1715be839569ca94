package models

import (
	"gorm.io/gorm"
)

// Boards a post can be filed under. Unknown input falls back to DefaultBoard.
var AllowedBoards = map[string]bool{
	"general": true,
	"chat":    true,
	"work":    true,
	"family":  true,
	"sports":  true,
}

const DefaultBoard = "general"

// Tags a post can carry. Unknown input falls back to DefaultTag.
var AllowedTags = map[string]bool{
	"生活": true,
	"租屋": true,
	"美食": true,
	"心情": true,
	"技術": true,
}

const DefaultTag = "生活"

type Post struct {
	gorm.Model
	AuthorID      uint   `gorm:"not null;index" json:"authorId"`
	Author        User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Content       string `gorm:"type:text;not null" json:"content"`
	ImageURL      string `gorm:"column:image_url;default:''" json:"imageUrl"`
	Board         string `gorm:"default:'general'" json:"board"`
	Tag           string `gorm:"default:'生活'" json:"tag"`
	LikesCount    int    `gorm:"default:0" json:"likes_count"`
	CommentsCount int    `gorm:"default:0" json:"comments_count"`
}

// PostLike holds at most one row per (post, user) pair; the composite unique
// index is what serializes concurrent toggles for the same pair.
type PostLike struct {
	gorm.Model
	PostID uint `gorm:"not null;uniqueIndex:uniq_post_user_like,priority:1" json:"postId"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex:uniq_post_user_like,priority:2" json:"userId"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type PostComment struct {
	gorm.Model
	PostID  uint   `gorm:"not null;index" json:"postId"`
	Post    Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (Post) TableName() string        { return "posts" }
func (PostLike) TableName() string    { return "post_likes" }
func (PostComment) TableName() string { return "post_comments" }
