package service

import (
	"context"
	"errors"
	"fmt"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/internal/util"
	"stackit_backend/pkg/logger"
	"stackit_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type AnswerService struct {
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	Notifier     Notifier
}

func NewAnswerService(
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	notifier Notifier,
) *AnswerService {
	return &AnswerService{
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		Notifier:     notifier,
	}
}

// AnswerRequest is_accepted 只能通过采纳接口修改，这里不接收
type AnswerRequest struct {
	Question uint   `json:"question" binding:"required"`
	Body     string `json:"body" binding:"required,notblank"`
}

type AnswerPatchRequest struct {
	Question *uint   `json:"question"`
	Body     *string `json:"body" binding:"omitempty,notblank"`
}

func (s *AnswerService) List(questionID uint) ([]AnswerResponse, error) {
	answers, err := s.AnswerRepo.FindAll(questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	resp := make([]AnswerResponse, 0, len(answers))
	for i := range answers {
		resp = append(resp, NewAnswerResponse(&answers[i]))
	}
	return resp, nil
}

func (s *AnswerService) Get(id uint) (*AnswerResponse, error) {
	answer, err := s.AnswerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := NewAnswerResponse(answer)
	return &resp, nil
}

func (s *AnswerService) findQuestion(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindSummary(id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, invalidPK("question", id)
		}
		return nil, err
	}
	return question, nil
}

// Create 回答写入成功后触发通知；通知失败只记录日志，不影响返回结果
func (s *AnswerService) Create(ctx context.Context, authorID uint, req AnswerRequest) (*AnswerResponse, error) {
	author, err := loadUser(s.UserRepo, authorID)
	if err != nil {
		return nil, err
	}
	question, err := s.findQuestion(req.Question)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: question.ID,
		AuthorID:   author.ID,
		Body:       req.Body,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	answer.Author = *author

	if s.Notifier != nil {
		if err := s.Notifier.AnswerPosted(ctx, answer, question, author); err != nil {
			logger.Log.Error("Answer notifications incomplete",
				zap.Uint("answer_id", answer.ID),
				zap.Uint("question_id", question.ID),
				zap.Error(err),
			)
		}
	}

	resp := NewAnswerResponse(answer)
	return &resp, nil
}

func (s *AnswerService) Update(id uint, req AnswerRequest) (*AnswerResponse, error) {
	if _, err := s.AnswerRepo.FindByID(id); err != nil {
		return nil, err
	}
	if _, err := s.findQuestion(req.Question); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"question_id": req.Question,
		"body":        req.Body,
	}
	if err := s.AnswerRepo.Update(id, fields); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *AnswerService) Patch(id uint, req AnswerPatchRequest) (*AnswerResponse, error) {
	if _, err := s.AnswerRepo.FindByID(id); err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	if req.Question != nil {
		if _, err := s.findQuestion(*req.Question); err != nil {
			return nil, err
		}
		fields["question_id"] = *req.Question
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if err := s.AnswerRepo.Update(id, fields); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *AnswerService) Delete(id uint) error {
	return s.AnswerRepo.Delete(id)
}

// Accept 只有问题作者可以采纳回答。不做互斥，可以有多个被采纳的回答
func (s *AnswerService) Accept(id, userID uint) error {
	answer, err := s.AnswerRepo.FindByIDWithQuestion(id)
	if err != nil {
		return err
	}
	if answer.Question == nil || answer.Question.AuthorID != userID {
		return util.ErrNotQuestionOwner
	}
	if err := s.AnswerRepo.MarkAccepted(id); err != nil {
		return fmt.Errorf("accept answer: %w", err)
	}
	monitoring.AnswersAccepted.Inc()
	return nil
}
