package repository

import (
	"errors"

	"stackit_backend/internal/model"
	"stackit_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create 唯一索引冲突时返回 username 字段的校验错误
func (r *UserRepository) Create(user *model.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.NewValidationError("username", util.MsgUsernameTaken)
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// FindByUsernames 一次查询解析多个用户名，excludeID 对应的用户不返回
func (r *UserRepository) FindByUsernames(usernames []string, excludeID uint) ([]model.User, error) {
	var users []model.User
	if len(usernames) == 0 {
		return users, nil
	}
	err := r.DB.Where("username IN ? AND id <> ?", usernames, excludeID).
		Order("id").
		Find(&users).Error
	return users, err
}
