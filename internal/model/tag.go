package model

// Tag 问题标签，按名称唯一，写问题时按需创建
type Tag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
