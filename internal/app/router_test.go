package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stackit_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testutil.Config()
	cfg.Storage.LocalPath = t.TempDir()

	a := New(cfg, testutil.NewDB(t), nil)
	t.Cleanup(a.cancel)
	return &testServer{t: t, app: a}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// register 注册并登录，返回 access token
func (s *testServer) register(username string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register/", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(s.t, w.Body.String(), "password")
	assert.NotContains(s.t, w.Body.String(), "correct-horse")

	w = s.do(http.MethodPost, "/api/token/", "", gin.H{"username": username, "password": "correct-horse"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(s.t, w, &tokens)
	require.NotEmpty(s.t, tokens.Access)
	require.NotEmpty(s.t, tokens.Refresh)
	return tokens.Access
}

type questionBody struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Tags    []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
	Answers []answerBody `json:"answers"`
}

type answerBody struct {
	ID         uint   `json:"id"`
	Question   uint   `json:"question"`
	Author     string `json:"author"`
	IsAccepted bool   `json:"is_accepted"`
}

type notificationBody struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
	Link    string `json:"link"`
	IsRead  bool   `json:"is_read"`
}

func TestQAFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	carol := s.register("carol")

	// 未登录不能提问
	w := s.do(http.MethodPost, "/api/questions/", "", gin.H{"title": "t", "body": "b", "tags": []string{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/questions/", alice, gin.H{
		"title": "How does select work?",
		"body":  "<p>details</p>",
		"tags":  []interface{}{gin.H{"name": "go"}, "channels"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var q questionBody
	decode(t, w, &q)
	assert.Equal(t, "alice", q.Author)
	assert.Len(t, q.Tags, 2)

	// 未登录不能回答
	w = s.do(http.MethodPost, "/api/answers/", "", gin.H{"question": q.ID, "body": "anonymous"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/answers/", bob, gin.H{
		"question": q.ID,
		"body":     "It blocks until a case is ready. cc @carol @carol @ghost",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ans answerBody
	decode(t, w, &ans)
	assert.Equal(t, "bob", ans.Author)
	assert.Equal(t, q.ID, ans.Question)
	assert.False(t, ans.IsAccepted)

	// 问题作者收到一条通知
	w = s.do(http.MethodGet, "/api/notifications/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var aliceNotes []notificationBody
	decode(t, w, &aliceNotes)
	require.Len(t, aliceNotes, 1)
	assert.Equal(t, "bob answered your question: How does select work?", aliceNotes[0].Message)
	assert.Equal(t, fmt.Sprintf("/questions/%d/", q.ID), aliceNotes[0].Link)

	// 重复 @ 只通知一次
	w = s.do(http.MethodGet, "/api/notifications/", carol, nil)
	var carolNotes []notificationBody
	decode(t, w, &carolNotes)
	require.Len(t, carolNotes, 1)
	assert.Equal(t, "bob mentioned you in an answer", carolNotes[0].Message)

	// 未读数与标记已读
	w = s.do(http.MethodGet, "/api/notifications/unread-count/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count": 1}`, w.Body.String())

	noteURL := fmt.Sprintf("/api/notifications/%d/", aliceNotes[0].ID)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, noteURL, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, noteURL+"mark_read/", bob, nil).Code)

	w = s.do(http.MethodPost, noteURL+"mark_read/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "Marked as read"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/notifications/unread-count/", alice, nil)
	assert.JSONEq(t, `{"unread_count": 0}`, w.Body.String())

	// 采纳
	acceptURL := fmt.Sprintf("/api/answers/%d/accept/", ans.ID)
	w = s.do(http.MethodPost, acceptURL, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "You are not the question owner"}`, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/answers/%d/", ans.ID), "", nil)
	decode(t, w, &ans)
	assert.False(t, ans.IsAccepted)

	w = s.do(http.MethodPost, acceptURL, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "Answer accepted"}`, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/questions/%d/", q.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &q)
	require.Len(t, q.Answers, 1)
	assert.True(t, q.Answers[0].IsAccepted)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/answers/999/accept/", alice, nil).Code)

	// 按标签筛选
	w = s.do(http.MethodGet, "/api/questions/?tag=channels", "", nil)
	var filtered []questionBody
	decode(t, w, &filtered)
	assert.Len(t, filtered, 1)

	// 删除问题级联删除回答
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/questions/%d/", q.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/api/answers/%d/", ans.ID), "", nil).Code)
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	w := s.do(http.MethodGet, "/api/auth/user/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1, "username": "alice", "email": "alice@example.com"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/user/", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/user/", "garbage", nil).Code)

	w = s.do(http.MethodPost, "/api/auth/register/", "", gin.H{"username": "alice", "password": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &errBody)
	assert.Equal(t, "A user with that username already exists.", errBody.Fields["username"])

	w = s.do(http.MethodPost, "/api/auth/register/", "", gin.H{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &errBody)
	assert.Contains(t, errBody.Fields, "username")
	assert.Contains(t, errBody.Fields, "password")

	w = s.do(http.MethodPost, "/api/token/", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTagAndVoteEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")

	w := s.do(http.MethodPost, "/api/tags/", "", gin.H{"name": "go"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/tags/", "", gin.H{"name": "go"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/questions/", alice, gin.H{"title": "t", "body": "b", "tags": []string{"go"}})
	require.Equal(t, http.StatusCreated, w.Code)
	var q questionBody
	decode(t, w, &q)

	w = s.do(http.MethodPost, "/api/answers/", alice, gin.H{"question": q.ID, "body": "self answer"})
	require.Equal(t, http.StatusCreated, w.Code)
	var ans answerBody
	decode(t, w, &ans)

	// 自问自答不产生通知
	w = s.do(http.MethodGet, "/api/notifications/unread-count/", alice, nil)
	assert.JSONEq(t, `{"unread_count": 0}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/votes/", "", gin.H{"answer": ans.ID, "value": 1}).Code)

	w = s.do(http.MethodPost, "/api/votes/", alice, gin.H{"answer": ans.ID, "value": 1, "user": 999})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var vote struct {
		ID    uint `json:"id"`
		User  uint `json:"user"`
		Value int  `json:"value"`
	}
	decode(t, w, &vote)
	assert.Equal(t, uint(1), vote.User, "client supplied user is ignored")

	w = s.do(http.MethodPost, "/api/votes/", alice, gin.H{"answer": ans.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/votes/%d/", vote.ID), alice, gin.H{"value": -1})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &vote)
	assert.Equal(t, -1, vote.Value)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/votes/?answer=%d", ans.ID), "", nil)
	var votes []json.RawMessage
	decode(t, w, &votes)
	assert.Len(t, votes, 1)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/tags/abc/", "", nil).Code)
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	upload := func(filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/uploads/images/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.app.Router.ServeHTTP(w, req)
		return w
	}

	w := upload("shot.png", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		URL string `json:"url"`
	}
	decode(t, w, &resp)
	assert.True(t, strings.HasPrefix(resp.URL, "/uploads/images/"), resp.URL)
	assert.True(t, strings.HasSuffix(resp.URL, ".png"), resp.URL)

	get := httptest.NewRecorder()
	s.app.Router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, get.Code)

	w = upload("notes.png", []byte("just some text pretending"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload("script.sh", png)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "components": {"database": "up"}}`, w.Body.String())
}
