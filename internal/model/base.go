package model

import (
	"time"
)

// swagger:model
// 问答相关表全部物理删除，级联依赖外键，因此不带 DeletedAt
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
