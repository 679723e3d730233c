package database

import (
	"fmt"
	"time"

	"stackit_backend/internal/config"
	"stackit_backend/internal/model"
	applog "stackit_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultTags 空库时写入的常用标签
var DefaultTags = []string{"go", "python", "javascript", "sql", "react", "docker"}

func Open(cfg *config.DatabaseConfig, logMode logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		// 外键需显式开启，否则 OnDelete:CASCADE 不生效
		dialector = sqlite.Open(cfg.Path + "?_pragma=foreign_keys(1)")
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil && cfg.Driver != "sqlite" {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Question{},
		&model.Answer{},
		&model.Vote{},
		&model.Notification{},
	)
}

// SeedTags 仅在 tags 表为空时写入
func SeedTags(db *gorm.DB, names []string) error {
	var count int64
	if err := db.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		if err := db.Create(&model.Tag{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := Open(cfg, logger.Warn)
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	applog.Log.Info("Database migration completed")

	if err := SeedTags(db, DefaultTags); err != nil {
		return nil, err
	}

	return db, nil
}
