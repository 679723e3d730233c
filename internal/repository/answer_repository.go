package repository

import (
	"stackit_backend/internal/model"
	"stackit_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// FindAll questionID 为 0 时不过滤
func (r *AnswerRepository) FindAll(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	query := r.DB.Preload("Author")
	if questionID != 0 {
		query = query.Where("question_id = ?", questionID)
	}
	err := query.Order("created_at DESC, id DESC").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.DB.Preload("Author").First(&answer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &answer, nil
}

// FindByIDWithQuestion 额外加载所属问题，采纳时用于校验问题作者
func (r *AnswerRepository) FindByIDWithQuestion(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.DB.Preload("Author").Preload("Question").First(&answer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &answer, nil
}

func (r *AnswerRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Omit(clause.Associations).Create(answer).Error
}

func (r *AnswerRepository) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		_, err := r.FindByID(id)
		return err
	}
	res := r.DB.Model(&model.Answer{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if ok, err := r.Exists(id); err != nil {
			return err
		} else if !ok {
			return util.ErrNotFound
		}
	}
	return nil
}

func (r *AnswerRepository) MarkAccepted(id uint) error {
	return r.DB.Model(&model.Answer{}).Where("id = ?", id).Update("is_accepted", true).Error
}

// Delete 级联删除回答下的投票
func (r *AnswerRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Answer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFound
		}
		return nil
	})
}
