package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindItem struct {
	Name string `json:"name" binding:"required,notblank,max=5"`
}

type bindPayload struct {
	Title string     `json:"title" binding:"required,notblank"`
	Email string     `json:"email" binding:"omitempty,email"`
	Items []bindItem `json:"items" binding:"required,dive"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p bindPayload
	return BindJSON(c, &p)
}

func TestBindJSON_FieldMessages(t *testing.T) {
	err := bindBody(t, `{"title":"  ","email":"nope","items":[{"name":"toolong"}]}`)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field may not be blank.", verr.Fields["title"])
	assert.Equal(t, "Enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, "Ensure this field has no more than 5 characters.", verr.Fields["items[0].name"])
}

func TestBindJSON_Required(t *testing.T) {
	err := bindBody(t, `{}`)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields["title"])
	assert.Equal(t, "This field is required.", verr.Fields["items"])
}

func TestBindJSON_TypeMismatch(t *testing.T) {
	err := bindBody(t, `{"title": 5, "items": []}`)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
}

func TestBindJSON_EmptyBody(t *testing.T) {
	err := bindBody(t, ``)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "non_field_errors")
}

func TestBindJSON_OK(t *testing.T) {
	assert.NoError(t, bindBody(t, `{"title":"hi","items":[]}`))
}
