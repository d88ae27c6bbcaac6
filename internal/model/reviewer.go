package model

import "time"

// Reviewer 审核人
type Reviewer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:32;uniqueIndex;not null"`
	IsAdmin   bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Reviewer) TableName() string {
	return "reviewers"
}
