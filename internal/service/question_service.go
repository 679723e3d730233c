package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/internal/util"
)

const maxTagNameLength = 50

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, userRepo *repository.UserRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
	}
}

// TagInput 接受 {"name": "go"}，也接受裸字符串 "go"
type TagInput struct {
	Name string `json:"name" binding:"required,notblank,max=50"`
}

func (t *TagInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Name)
	}
	type plain TagInput
	return json.Unmarshal(data, (*plain)(t))
}

type QuestionRequest struct {
	Title string     `json:"title" binding:"required,notblank,max=255"`
	Body  string     `json:"body" binding:"required,notblank"`
	Tags  []TagInput `json:"tags" binding:"required,dive"`
}

// QuestionPatchRequest 未出现的字段保持不变
type QuestionPatchRequest struct {
	Title *string    `json:"title" binding:"omitempty,notblank,max=255"`
	Body  *string    `json:"body" binding:"omitempty,notblank"`
	Tags  []TagInput `json:"tags" binding:"omitempty,dive"`
}

// normalizeTagNames 去掉首尾空白并按首次出现顺序去重
func normalizeTagNames(tags []TagInput) ([]string, error) {
	names := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for i, t := range tags {
		name := strings.TrimSpace(t.Name)
		field := fmt.Sprintf("tags[%d].name", i)
		if name == "" {
			return nil, util.NewValidationError(field, "This field may not be blank.")
		}
		if utf8.RuneCountInString(name) > maxTagNameLength {
			return nil, util.NewValidationError(field,
				fmt.Sprintf("Ensure this field has no more than %d characters.", maxTagNameLength))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

func (s *QuestionService) List(filter repository.QuestionFilter) ([]QuestionResponse, error) {
	questions, err := s.QuestionRepo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	resp := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, NewQuestionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *QuestionService) Get(id uint) (*QuestionResponse, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := NewQuestionResponse(question)
	return &resp, nil
}

// Create 作者取自当前登录用户
func (s *QuestionService) Create(authorID uint, req QuestionRequest) (*QuestionResponse, error) {
	author, err := loadUser(s.UserRepo, authorID)
	if err != nil {
		return nil, err
	}
	names, err := normalizeTagNames(req.Tags)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		AuthorID: author.ID,
	}
	if err := s.QuestionRepo.Create(question, names); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return s.Get(question.ID)
}

// Update 全量更新，tags 整体替换
func (s *QuestionService) Update(id uint, req QuestionRequest) (*QuestionResponse, error) {
	names, err := normalizeTagNames(req.Tags)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"title": strings.TrimSpace(req.Title),
		"body":  req.Body,
	}
	if err := s.QuestionRepo.Update(id, fields, names); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuestionService) Patch(id uint, req QuestionPatchRequest) (*QuestionResponse, error) {
	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}

	var names []string
	if req.Tags != nil {
		var err error
		if names, err = normalizeTagNames(req.Tags); err != nil {
			return nil, err
		}
	}
	if err := s.QuestionRepo.Update(id, fields, names); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuestionService) Delete(id uint) error {
	return s.QuestionRepo.Delete(id)
}
