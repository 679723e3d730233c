package service

import (
	"encoding/json"
	"errors"
	"testing"

	"stackit_backend/internal/model"
	"stackit_backend/internal/repository"
	"stackit_backend/internal/testutil"
	"stackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(repository.NewQuestionRepository(db), repository.NewUserRepository(db))
}

func tagNames(tags []TagResponse) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

func TestQuestionService_CreateResolvesExistingTag(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	require.NoError(t, db.Create(&model.Tag{Name: "go"}).Error)
	svc := newQuestionService(db)

	resp, err := svc.Create(alice.ID, QuestionRequest{
		Title: "Scheduler internals",
		Body:  "How does the Go scheduler work?",
		Tags:  []TagInput{{Name: "go"}, {Name: "systems"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Author)
	assert.ElementsMatch(t, []string{"go", "systems"}, tagNames(resp.Tags))
	assert.NotNil(t, resp.Answers)

	var goRows int64
	db.Model(&model.Tag{}).Where("name = ?", "go").Count(&goRows)
	assert.Equal(t, int64(1), goRows)
}

func TestQuestionService_TagNamesNormalized(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	svc := newQuestionService(db)

	resp, err := svc.Create(alice.ID, QuestionRequest{
		Title: "t",
		Body:  "b",
		Tags:  []TagInput{{Name: " go "}, {Name: "go"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tagNames(resp.Tags))

	_, err = svc.Create(alice.ID, QuestionRequest{Title: "t", Body: "b", Tags: []TagInput{{Name: "   "}}})
	var verr *util.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "tags[0].name")
}

func TestQuestionService_UpdateAndPatch(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	svc := newQuestionService(db)

	created, err := svc.Create(alice.ID, QuestionRequest{Title: "t", Body: "b", Tags: []TagInput{{Name: "go"}}})
	require.NoError(t, err)

	title := "patched"
	patched, err := svc.Patch(created.ID, QuestionPatchRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "patched", patched.Title)
	assert.Equal(t, []string{"go"}, tagNames(patched.Tags), "absent tags are kept")

	updated, err := svc.Update(created.ID, QuestionRequest{Title: "full", Body: "new", Tags: []TagInput{{Name: "rust"}}})
	require.NoError(t, err)
	assert.Equal(t, "full", updated.Title)
	assert.Equal(t, []string{"rust"}, tagNames(updated.Tags))
	assert.Equal(t, "alice", updated.Author)

	_, err = svc.Update(999, QuestionRequest{Title: "x", Body: "y", Tags: []TagInput{}})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestQuestionService_CreateUnknownAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuestionService(db)

	_, err := svc.Create(42, QuestionRequest{Title: "t", Body: "b", Tags: []TagInput{}})
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestTagInput_UnmarshalJSON(t *testing.T) {
	var req QuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","body":"b","tags":[{"name":"go"},"rust"]}`), &req))
	require.Len(t, req.Tags, 2)
	assert.Equal(t, "go", req.Tags[0].Name)
	assert.Equal(t, "rust", req.Tags[1].Name)
}
