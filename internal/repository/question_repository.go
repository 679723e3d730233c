package repository

import (
	"stackit_backend/internal/model"
	"stackit_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

type QuestionFilter struct {
	Tag    string // 标签名
	Author string // 作者用户名
}

// withDetail 预加载作者、标签（按名称）、回答（最新在前）及回答作者
func withDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name")
		}).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at DESC, answers.id DESC")
		}).
		Preload("Answers.Author")
}

func (r *QuestionRepository) FindAll(filter QuestionFilter) ([]model.Question, error) {
	var questions []model.Question

	query := r.DB.Model(&model.Question{})
	if filter.Tag != "" {
		query = query.Where("questions.id IN (?)",
			r.DB.Table("question_tags").
				Select("question_tags.question_id").
				Joins("JOIN tags ON tags.id = question_tags.tag_id").
				Where("tags.name = ?", filter.Tag),
		)
	}
	if filter.Author != "" {
		query = query.Where("questions.author_id IN (?)",
			r.DB.Model(&model.User{}).Select("id").Where("username = ?", filter.Author),
		)
	}

	err := withDetail(query).
		Order("questions.created_at DESC, questions.id DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := withDetail(r.DB).First(&question, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

// FindSummary 不加载任何关联
func (r *QuestionRepository) FindSummary(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.DB.First(&question, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

// Exists 仅检查主键是否存在
func (r *QuestionRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create 先解析标签，再在一个事务里写入问题并建立关联
func (r *QuestionRepository) Create(question *model.Question, tagNames []string) error {
	// 标签在问题事务之外解析，冲突重读不受事务快照影响
	tags, err := NewTagRepository(r.DB).GetOrCreate(tagNames)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(question).Association("Tags").Append(tags)
	})
}

// Update 只更新 fields 中的列；tagNames 为 nil 时保留原有标签，否则整体替换
func (r *QuestionRepository) Update(id uint, fields map[string]interface{}, tagNames []string) error {
	var tags []model.Tag
	if tagNames != nil {
		exists, err := r.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return util.ErrNotFound
		}
		if tags, err = NewTagRepository(r.DB).GetOrCreate(tagNames); err != nil {
			return err
		}
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var question model.Question
		if err := tx.First(&question, id).Error; err != nil {
			return notFound(err)
		}
		if len(fields) > 0 {
			if err := tx.Model(&question).Updates(fields).Error; err != nil {
				return err
			}
		}
		if tagNames == nil {
			return nil
		}
		return tx.Model(&question).Association("Tags").Replace(tags)
	})
}

// Delete 级联删除：投票 -> 回答 -> 标签关联 -> 问题
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&model.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFound
		}
		return nil
	})
}
