package model

type Question struct {
	BaseModel
	Title    string   `gorm:"size:255;not null" json:"title"`
	Body     string   `gorm:"type:text;not null" json:"body"`
	AuthorID uint     `gorm:"index;not null" json:"author_id"`
	Author   User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Tags     []Tag    `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Answers  []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	BaseModel
	QuestionID uint      `gorm:"index;not null" json:"question"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID   uint      `gorm:"index;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsAccepted bool      `gorm:"default:false" json:"is_accepted"`
	Votes      []Vote    `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}
