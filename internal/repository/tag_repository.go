package repository

import (
	"errors"

	"stackit_backend/internal/model"
	"stackit_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgTagExists = "tag with this name already exists."

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.DB.First(&tag, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tag, nil
}

func (r *TagRepository) Create(tag *model.Tag) error {
	if err := r.DB.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.NewValidationError("name", msgTagExists)
		}
		return err
	}
	return nil
}

func (r *TagRepository) Update(tag *model.Tag) error {
	if err := r.DB.Model(tag).Update("name", tag.Name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.NewValidationError("name", msgTagExists)
		}
		return err
	}
	return nil
}

// Delete 同时删除 question_tags 中的关联行
func (r *TagRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM question_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFound
		}
		return nil
	})
}

// GetOrCreate 按名称查找标签，不存在则创建。并发创建同名标签时
// 唯一索引冲突被当作成功处理，再读一次已存在的行。
// 不要在长事务里调用：REPEATABLE READ 快照读不到对方刚提交的行，
// 冲突后的重读在 MySQL 上改用共享锁读取最新提交版本。
func (r *TagRepository) GetOrCreate(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := r.DB.Where("name = ?", name).First(&tag).Error
		if err == nil {
			tags = append(tags, tag)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		tag = model.Tag{Name: name}
		res := r.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&tag)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 || tag.ID == 0 {
			tag = model.Tag{}
			if err := r.currentRead().Where("name = ?", name).First(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// currentRead 读取最新已提交版本；SQLite 没有行锁，写事务本身串行
func (r *TagRepository) currentRead() *gorm.DB {
	if r.DB.Dialector.Name() == "mysql" {
		return r.DB.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return r.DB
}
