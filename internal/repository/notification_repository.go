package repository

import (
	"stackit_backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.DB.Omit("User").Create(notification).Error
}

// FindByUser 最新在前
func (r *NotificationRepository) FindByUser(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

// FindByIDForUser 不属于该用户的通知视为不存在
func (r *NotificationRepository) FindByIDForUser(id, userID uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return nil, notFound(err)
	}
	return &notification, nil
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	res := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 已读的行在 MySQL 下 RowsAffected 也为 0
		if _, err := r.FindByIDForUser(id, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
