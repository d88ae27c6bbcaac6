package model

import "time"

// PendingFAQ 待审核FAQ
type PendingFAQ struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	IsGlobal  bool      `gorm:"default:false"`
	CreatedBy string    `gorm:"size:32;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// 审核消息定位（审批后更新原消息用）
	ReviewChannelID string `gorm:"size:32"`
	ReviewMessageTS string `gorm:"size:32"`
}

// TableName 指定表名
func (PendingFAQ) TableName() string {
	return "pending_faqs"
}

// PublishedFAQ 已发布FAQ
type PublishedFAQ struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	IsGlobal  bool      `gorm:"index;default:false"`
	CreatedBy string    `gorm:"size:32;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (PublishedFAQ) TableName() string {
	return "published_faqs"
}

// RejectedFAQ 已驳回FAQ
type RejectedFAQ struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Question   string    `gorm:"type:text;not null"`
	Answer     string    `gorm:"type:text;not null"`
	IsGlobal   bool      `gorm:"default:false"`
	CreatedBy  string    `gorm:"size:32;index"`
	RejectedBy string    `gorm:"size:32;index"`
	Reason     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (RejectedFAQ) TableName() string {
	return "rejected_faqs"
}

// PendingFAQChannel 待审核FAQ与频道的绑定
type PendingFAQChannel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	FAQID     uint   `gorm:"index;not null"`
	ChannelID string `gorm:"size:32;index;not null"`
}

// TableName 指定表名
func (PendingFAQChannel) TableName() string {
	return "pending_faq_channels"
}

// PublishedFAQChannel 已发布FAQ与频道的绑定
type PublishedFAQChannel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	FAQID     uint   `gorm:"index;not null"`
	ChannelID string `gorm:"size:32;index;not null"`
}

// TableName 指定表名
func (PublishedFAQChannel) TableName() string {
	return "published_faq_channels"
}
