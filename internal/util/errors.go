package util

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("authentication credentials were not provided")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrNotQuestionOwner   = errors.New("requester is not the question owner")
)

const (
	MsgUsernameTaken    = "A user with that username already exists."
	MsgNotQuestionOwner = "You are not the question owner"
)

// ValidationError 字段级校验失败，Fields 为 字段名 -> 错误描述
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
