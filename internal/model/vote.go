package model

// Vote 对回答的投票。value 约定为 +1/-1，但存储层不做限制，
// (answer, user) 也不唯一
type Vote struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	AnswerID uint `gorm:"index;not null" json:"answer"`
	UserID   uint `gorm:"index;not null" json:"user"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Value    int  `gorm:"not null" json:"value"`
}

func (Vote) TableName() string {
	return "votes"
}
