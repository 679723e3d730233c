package service

import (
	"fmt"
	"strings"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
)

type TagService struct {
	TagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{TagRepo: tagRepo}
}

type TagRequest struct {
	Name string `json:"name" binding:"required,notblank,max=50"`
}

type TagPatchRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank,max=50"`
}

func (s *TagService) List() ([]TagResponse, error) {
	tags, err := s.TagRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	resp := make([]TagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, NewTagResponse(&tags[i]))
	}
	return resp, nil
}

func (s *TagService) Get(id uint) (*TagResponse, error) {
	tag, err := s.TagRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := NewTagResponse(tag)
	return &resp, nil
}

func (s *TagService) Create(req TagRequest) (*TagResponse, error) {
	tag := &model.Tag{Name: strings.TrimSpace(req.Name)}
	if err := s.TagRepo.Create(tag); err != nil {
		return nil, err
	}
	resp := NewTagResponse(tag)
	return &resp, nil
}

func (s *TagService) Update(id uint, req TagRequest) (*TagResponse, error) {
	return s.rename(id, req.Name)
}

func (s *TagService) Patch(id uint, req TagPatchRequest) (*TagResponse, error) {
	if req.Name == nil {
		return s.Get(id)
	}
	return s.rename(id, *req.Name)
}

func (s *TagService) rename(id uint, name string) (*TagResponse, error) {
	tag, err := s.TagRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	tag.Name = strings.TrimSpace(name)
	if err := s.TagRepo.Update(tag); err != nil {
		return nil, err
	}
	resp := NewTagResponse(tag)
	return &resp, nil
}

func (s *TagService) Delete(id uint) error {
	return s.TagRepo.Delete(id)
}
