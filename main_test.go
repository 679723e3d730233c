package main

import (
	"os"
	"path/filepath"
	"testing"

	"stackit_backend/internal/model"
	"stackit_backend/internal/testutil"
	"stackit_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestRunMigrations(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := testutil.Config()
	cfg.Database.Path = filepath.Join(dir, "stackit.db")

	runMigrations(cfg)

	db, err := database.Open(&cfg.Database, logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, m := range []interface{}{&model.User{}, &model.Question{}, &model.Answer{}, &model.Notification{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}

	var tags int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(len(database.DefaultTags)), tags)
}
