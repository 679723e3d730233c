// Package testutil 测试共用的数据库、Redis 与数据构造
package testutil

import (
	"testing"
	"time"

	"stackit_backend/internal/config"
	"stackit_backend/internal/model"
	"stackit_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	JWTSecret = "test-secret-test-secret-test-secret"
	Password  = "s3cret-pass"
)

// NewDB 内存 SQLite，外键开启并完成迁移。
// 单连接保证所有查询落在同一个内存库上。
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file::memory:",
	}, logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func NewRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func Config() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "test"},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   "file::memory:",
		},
		JWT: config.JWTConfig{
			Secret:            JWTSecret,
			ExpireTime:        time.Hour,
			RefreshExpireTime: 24 * time.Hour,
		},
		Redis: config.RedisConfig{UnreadTTLSeconds: 60},
		Storage: config.StorageConfig{
			Type:        "local",
			MaxUploadMB: 1,
		},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}
}

// CreateUser 密码统一为 Password
func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateQuestion 直接写库，不经过标签解析
func CreateQuestion(t testing.TB, db *gorm.DB, author *model.User, title string) *model.Question {
	t.Helper()

	q := &model.Question{Title: title, Body: "body of " + title, AuthorID: author.ID}
	require.NoError(t, db.Omit("Author", "Tags", "Answers").Create(q).Error)
	return q
}

func CreateAnswer(t testing.TB, db *gorm.DB, question *model.Question, author *model.User, body string) *model.Answer {
	t.Helper()

	a := &model.Answer{QuestionID: question.ID, AuthorID: author.ID, Body: body}
	require.NoError(t, db.Omit("Author", "Question", "Votes").Create(a).Error)
	return a
}
