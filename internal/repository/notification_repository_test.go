package repository

import (
	"testing"

	"stackit_backend/internal/model"
	"stackit_backend/internal/testutil"
	"stackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewNotificationRepository(db)

	n := &model.Notification{UserID: alice.ID, Message: "hi", Link: "/questions/1/"}
	require.NoError(t, repo.Create(n))

	_, err := repo.FindByIDForUser(n.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(n.ID, bob.ID), util.ErrNotFound)

	got, err := repo.FindByIDForUser(n.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	repo := NewNotificationRepository(db)

	var ids []uint
	for i := 0; i < 3; i++ {
		n := &model.Notification{UserID: alice.ID, Message: "m", Link: "/questions/1/"}
		require.NoError(t, repo.Create(n))
		ids = append(ids, n.ID)
	}

	count, err := repo.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, repo.MarkRead(ids[0], alice.ID))
	// 重复标记已读不报错
	require.NoError(t, repo.MarkRead(ids[0], alice.ID))

	count, err = repo.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := repo.FindByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
}
