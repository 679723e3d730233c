package repository

import (
	"stackit_backend/internal/model"
	"stackit_backend/internal/util"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) FindAll(answerID uint) ([]model.Vote, error) {
	var votes []model.Vote
	query := r.DB.Order("id")
	if answerID != 0 {
		query = query.Where("answer_id = ?", answerID)
	}
	err := query.Find(&votes).Error
	return votes, err
}

func (r *VoteRepository) FindByID(id uint) (*model.Vote, error) {
	var vote model.Vote
	if err := r.DB.First(&vote, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &vote, nil
}

func (r *VoteRepository) Create(vote *model.Vote) error {
	return r.DB.Omit("User").Create(vote).Error
}

// Update 只允许修改 answer / value，投票人不变
func (r *VoteRepository) Update(vote *model.Vote) error {
	return r.DB.Model(vote).Select("answer_id", "value").Updates(vote).Error
}

func (r *VoteRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Vote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
