package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-bot/internal/model"
)

// FAQRepository FAQ数据访问
type FAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository 创建FAQ仓库
func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// CreatePending 创建待审核FAQ及其频道绑定
func (r *FAQRepository) CreatePending(faq *model.PendingFAQ, channelIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(faq).Error; err != nil {
			return err
		}
		for _, channelID := range channelIDs {
			binding := &model.PendingFAQChannel{FAQID: faq.ID, ChannelID: channelID}
			if err := tx.Create(binding).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPendingByID 获取待审核FAQ
func (r *FAQRepository) GetPendingByID(id uint) (*model.PendingFAQ, error) {
	var faq model.PendingFAQ
	err := r.db.Where("id = ?", id).First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// SetReviewMessage 记录审核消息位置
func (r *FAQRepository) SetReviewMessage(id uint, channelID, messageTS string) error {
	return r.db.Model(&model.PendingFAQ{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_channel_id": channelID,
			"review_message_ts": messageTS,
		}).Error
}

// Approve 发布待审核FAQ：整体迁移到已发布表并删除待审核行
//
// 删除待审核行的影响行数作为并发裁决：并发的批准/驳回只有一方能删到行，
// 另一方得到 ErrNotFound。
func (r *FAQRepository) Approve(pendingID uint) (*model.PublishedFAQ, error) {
	var published *model.PublishedFAQ
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var pending model.PendingFAQ
		if err := tx.Where("id = ?", pendingID).First(&pending).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.PendingFAQ{}, "id = ?", pendingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var bindings []model.PendingFAQChannel
		if err := tx.Where("faq_id = ?", pendingID).Find(&bindings).Error; err != nil {
			return err
		}

		published = &model.PublishedFAQ{
			Question:  pending.Question,
			Answer:    pending.Answer,
			IsGlobal:  pending.IsGlobal,
			CreatedBy: pending.CreatedBy,
		}
		if err := tx.Create(published).Error; err != nil {
			return err
		}
		for _, b := range bindings {
			nb := &model.PublishedFAQChannel{FAQID: published.ID, ChannelID: b.ChannelID}
			if err := tx.Create(nb).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.PendingFAQChannel{}, "faq_id = ?", pendingID).Error
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// Reject 驳回待审核FAQ：记录驳回人与原因并删除待审核行
func (r *FAQRepository) Reject(pendingID uint, rejectedBy, reason string) (*model.RejectedFAQ, error) {
	var rejected *model.RejectedFAQ
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var pending model.PendingFAQ
		if err := tx.Where("id = ?", pendingID).First(&pending).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.PendingFAQ{}, "id = ?", pendingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		rejected = &model.RejectedFAQ{
			Question:   pending.Question,
			Answer:     pending.Answer,
			IsGlobal:   pending.IsGlobal,
			CreatedBy:  pending.CreatedBy,
			RejectedBy: rejectedBy,
			Reason:     reason,
		}
		if err := tx.Create(rejected).Error; err != nil {
			return err
		}

		return tx.Delete(&model.PendingFAQChannel{}, "faq_id = ?", pendingID).Error
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// ListVisible 列出某频道可见的已发布FAQ（全局或绑定到该频道）
func (r *FAQRepository) ListVisible(channelID string) ([]*model.PublishedFAQ, error) {
	var faqs []*model.PublishedFAQ
	err := r.db.
		Where("is_global = ?", true).
		Or("id IN (?)", r.db.Model(&model.PublishedFAQChannel{}).
			Select("faq_id").Where("channel_id = ?", channelID)).
		Order("id").
		Find(&faqs).Error
	return faqs, err
}

// GetVisibleByID 获取某频道可见的指定已发布FAQ
func (r *FAQRepository) GetVisibleByID(channelID string, id uint) (*model.PublishedFAQ, error) {
	var faq model.PublishedFAQ
	err := r.db.Where("id = ?", id).
		Where(r.db.Where("is_global = ?", true).
			Or("id IN (?)", r.db.Model(&model.PublishedFAQChannel{}).
				Select("faq_id").Where("channel_id = ?", channelID))).
		First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// FindVisibleByQuestion 在某频道可见集合内按问题文本精确匹配
func (r *FAQRepository) FindVisibleByQuestion(channelID, question string) (*model.PublishedFAQ, error) {
	var faq model.PublishedFAQ
	err := r.db.Where("question = ?", question).
		Where(r.db.Where("is_global = ?", true).
			Or("id IN (?)", r.db.Model(&model.PublishedFAQChannel{}).
				Select("faq_id").Where("channel_id = ?", channelID))).
		First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// CountPublished 统计已发布FAQ数量
func (r *FAQRepository) CountPublished() (int64, error) {
	var n int64
	err := r.db.Model(&model.PublishedFAQ{}).Count(&n).Error
	return n, err
}

// IsNotFound 判断是否为记录不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
