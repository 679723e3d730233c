package service

import (
	"errors"
	"fmt"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/internal/util"
)

type VoteService struct {
	VoteRepo   *repository.VoteRepository
	AnswerRepo *repository.AnswerRepository
	UserRepo   *repository.UserRepository
}

func NewVoteService(voteRepo *repository.VoteRepository, answerRepo *repository.AnswerRepository, userRepo *repository.UserRepository) *VoteService {
	return &VoteService{
		VoteRepo:   voteRepo,
		AnswerRepo: answerRepo,
		UserRepo:   userRepo,
	}
}

// VoteRequest value 不限制取值范围，0 也合法
type VoteRequest struct {
	Answer uint `json:"answer" binding:"required"`
	Value  *int `json:"value" binding:"required"`
}

type VotePatchRequest struct {
	Answer *uint `json:"answer"`
	Value  *int  `json:"value"`
}

func (s *VoteService) List(answerID uint) ([]VoteResponse, error) {
	votes, err := s.VoteRepo.FindAll(answerID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	resp := make([]VoteResponse, 0, len(votes))
	for i := range votes {
		resp = append(resp, NewVoteResponse(&votes[i]))
	}
	return resp, nil
}

func (s *VoteService) Get(id uint) (*VoteResponse, error) {
	vote, err := s.VoteRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := NewVoteResponse(vote)
	return &resp, nil
}

func (s *VoteService) checkAnswer(id uint) error {
	ok, err := s.AnswerRepo.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidPK("answer", id)
	}
	return nil
}

func (s *VoteService) Create(userID uint, req VoteRequest) (*VoteResponse, error) {
	user, err := loadUser(s.UserRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAnswer(req.Answer); err != nil {
		return nil, err
	}

	vote := &model.Vote{
		AnswerID: req.Answer,
		UserID:   user.ID,
		Value:    *req.Value,
	}
	if err := s.VoteRepo.Create(vote); err != nil {
		return nil, fmt.Errorf("create vote: %w", err)
	}
	resp := NewVoteResponse(vote)
	return &resp, nil
}

func (s *VoteService) Update(id uint, req VoteRequest) (*VoteResponse, error) {
	return s.Patch(id, VotePatchRequest{Answer: &req.Answer, Value: req.Value})
}

// Patch 投票人保持不变
func (s *VoteService) Patch(id uint, req VotePatchRequest) (*VoteResponse, error) {
	vote, err := s.VoteRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Answer != nil {
		if err := s.checkAnswer(*req.Answer); err != nil {
			return nil, err
		}
		vote.AnswerID = *req.Answer
	}
	if req.Value != nil {
		vote.Value = *req.Value
	}
	if err := s.VoteRepo.Update(vote); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update vote: %w", err)
	}
	resp := NewVoteResponse(vote)
	return &resp, nil
}

func (s *VoteService) Delete(id uint) error {
	return s.VoteRepo.Delete(id)
}
