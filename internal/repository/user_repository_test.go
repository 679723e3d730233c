package repository

import (
	"errors"
	"testing"

	"stackit_backend/internal/model"
	"stackit_backend/internal/testutil"
	"stackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByUsernamesExcludes(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewUserRepository(db)

	users, err := repo.FindByUsernames([]string{"alice", "bob", "ghost"}, alice.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)

	none, err := repo.FindByUsernames(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "alice")

	err := NewUserRepository(db).Create(&model.User{Username: "alice", Password: "x"})
	var verr *util.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, util.MsgUsernameTaken, verr.Fields["username"])
}
