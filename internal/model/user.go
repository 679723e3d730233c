package model

// swagger:model User
type User struct {
	BaseModel
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:254" json:"email"`
	Password string `gorm:"size:128;not null" json:"-"` // bcrypt 哈希，永不返回
}

func (User) TableName() string {
	return "users"
}
