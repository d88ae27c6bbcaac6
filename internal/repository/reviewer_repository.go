package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-bot/internal/model"
)

// ReviewerRepository 审核人数据访问
type ReviewerRepository struct {
	db *gorm.DB
}

// NewReviewerRepository 创建审核人仓库
func NewReviewerRepository(db *gorm.DB) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

// EnsureAdmin 保证管理员存在（启动时播种）
func (r *ReviewerRepository) EnsureAdmin(userID string) error {
	reviewer := model.Reviewer{UserID: userID, IsAdmin: true}
	return r.db.Where(model.Reviewer{UserID: userID}).
		Assign(model.Reviewer{IsAdmin: true}).
		FirstOrCreate(&reviewer).Error
}

// Register 注册审核人（重复注册幂等）
func (r *ReviewerRepository) Register(userID string) error {
	reviewer := model.Reviewer{UserID: userID}
	return r.db.Where(model.Reviewer{UserID: userID}).
		FirstOrCreate(&reviewer).Error
}

// IsReviewer 判断是否为审核人
func (r *ReviewerRepository) IsReviewer(userID string) (bool, error) {
	var reviewer model.Reviewer
	err := r.db.Where("user_id = ?", userID).First(&reviewer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count 统计审核人数量
func (r *ReviewerRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Reviewer{}).Count(&n).Error
	return n, err
}
