package service

import (
	"fmt"
	"time"

	"stackit_backend/internal/model"
	"stackit_backend/internal/util"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AnswerResponse struct {
	ID         uint      `json:"id"`
	Question   uint      `json:"question"`
	Body       string    `json:"body"`
	Author     string    `json:"author"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Author    string           `json:"author"`
	Tags      []TagResponse    `json:"tags"`
	Answers   []AnswerResponse `json:"answers"`
	CreatedAt time.Time        `json:"created_at"`
}

type VoteResponse struct {
	ID     uint `json:"id"`
	Answer uint `json:"answer"`
	User   uint `json:"user"`
	Value  int  `json:"value"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func NewTagResponse(t *model.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func NewAnswerResponse(a *model.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		Question:   a.QuestionID,
		Body:       a.Body,
		Author:     a.Author.Username,
		IsAccepted: a.IsAccepted,
		CreatedAt:  a.CreatedAt,
	}
}

func NewQuestionResponse(q *model.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:        q.ID,
		Title:     q.Title,
		Body:      q.Body,
		Author:    q.Author.Username,
		Tags:      make([]TagResponse, 0, len(q.Tags)),
		Answers:   make([]AnswerResponse, 0, len(q.Answers)),
		CreatedAt: q.CreatedAt,
	}
	for i := range q.Tags {
		resp.Tags = append(resp.Tags, NewTagResponse(&q.Tags[i]))
	}
	for i := range q.Answers {
		resp.Answers = append(resp.Answers, NewAnswerResponse(&q.Answers[i]))
	}
	return resp
}

func NewVoteResponse(v *model.Vote) VoteResponse {
	return VoteResponse{ID: v.ID, Answer: v.AnswerID, User: v.UserID, Value: v.Value}
}

func NewNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		User:      n.UserID,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// invalidPK 外键字段指向不存在的对象
func invalidPK(field string, id uint) error {
	return util.NewValidationError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}
