package repository

import (
	"errors"

	"stackit_backend/internal/util"

	"gorm.io/gorm"
)

// notFound 把 gorm 的记录不存在错误统一成 util.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}
