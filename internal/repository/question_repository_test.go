package repository

import (
	"testing"

	"stackit_backend/internal/model"
	"stackit_backend/internal/testutil"
	"stackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_CreateWithTags(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "alice")
	repo := NewQuestionRepository(db)

	q := &model.Question{Title: "Goroutines?", Body: "How?", AuthorID: author.ID}
	require.NoError(t, repo.Create(q, []string{"go", "concurrency"}))

	got, err := repo.FindByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Author.Username)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "concurrency", got.Tags[0].Name)
	assert.Equal(t, "go", got.Tags[1].Name)
}

func TestQuestionRepository_UpdateTags(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "alice")
	repo := NewQuestionRepository(db)

	q := &model.Question{Title: "t", Body: "b", AuthorID: author.ID}
	require.NoError(t, repo.Create(q, []string{"go"}))

	// nil 保留原有标签
	require.NoError(t, repo.Update(q.ID, map[string]interface{}{"title": "t2"}, nil))
	got, err := repo.FindByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, "t2", got.Title)
	require.Len(t, got.Tags, 1)

	require.NoError(t, repo.Update(q.ID, nil, []string{"rust", "wasm"}))
	got, err = repo.FindByID(q.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "rust", got.Tags[0].Name)

	require.NoError(t, repo.Update(q.ID, nil, []string{}))
	got, err = repo.FindByID(q.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	assert.ErrorIs(t, repo.Update(999, nil, nil), util.ErrNotFound)
}

func TestQuestionRepository_FindAllFilters(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewQuestionRepository(db)

	q1 := &model.Question{Title: "first", Body: "b", AuthorID: alice.ID}
	require.NoError(t, repo.Create(q1, []string{"go"}))
	q2 := &model.Question{Title: "second", Body: "b", AuthorID: bob.ID}
	require.NoError(t, repo.Create(q2, []string{"python"}))
	q3 := &model.Question{Title: "third", Body: "b", AuthorID: alice.ID}
	require.NoError(t, repo.Create(q3, []string{"go", "python"}))

	all, err := repo.FindAll(QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, q3.ID, all[0].ID, "most recent first")

	byTag, err := repo.FindAll(QuestionFilter{Tag: "go"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	byAuthor, err := repo.FindAll(QuestionFilter{Author: "bob"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, q2.ID, byAuthor[0].ID)

	both, err := repo.FindAll(QuestionFilter{Tag: "python", Author: "alice"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, q3.ID, both[0].ID)
}

func TestQuestionRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := NewQuestionRepository(db)

	q := &model.Question{Title: "t", Body: "b", AuthorID: alice.ID}
	require.NoError(t, repo.Create(q, []string{"go"}))
	a := testutil.CreateAnswer(t, db, q, bob, "answer")
	require.NoError(t, db.Create(&model.Vote{AnswerID: a.ID, UserID: alice.ID, Value: 1}).Error)

	require.NoError(t, repo.Delete(q.ID))

	var answers, votes, links, tags int64
	db.Model(&model.Answer{}).Count(&answers)
	db.Model(&model.Vote{}).Count(&votes)
	db.Table("question_tags").Count(&links)
	db.Model(&model.Tag{}).Count(&tags)
	assert.Zero(t, answers)
	assert.Zero(t, votes)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), tags, "tags outlive questions")

	assert.ErrorIs(t, repo.Delete(q.ID), util.ErrNotFound)
}

func TestQuestionRepository_AnswersNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	q := testutil.CreateQuestion(t, db, alice, "t")
	first := testutil.CreateAnswer(t, db, q, alice, "one")
	second := testutil.CreateAnswer(t, db, q, alice, "two")

	got, err := NewQuestionRepository(db).FindByID(q.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, second.ID, got.Answers[0].ID)
	assert.Equal(t, first.ID, got.Answers[1].ID)
	assert.Equal(t, "alice", got.Answers[0].Author.Username)
}
