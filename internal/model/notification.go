package model

import "time"

// Notification 站内通知，只由回答工作流创建，客户端只能标记已读
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index:idx_notification_user_read;not null" json:"user"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	Link      string    `gorm:"size:200;not null" json:"link"`
	IsRead    bool      `gorm:"index:idx_notification_user_read;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
