package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/course-service/internal/model"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   model.CourseInput
		wantMsg string
	}{
		{name: "valid", input: model.CourseInput{Name: strPtr("math")}},
		{name: "exactly three", input: model.CourseInput{Name: strPtr("abc")}},
		{name: "absent", input: model.CourseInput{}, wantMsg: `"name" is required`},
		{name: "empty", input: model.CourseInput{Name: strPtr("")}, wantMsg: `"name" is not allowed to be empty`},
		{name: "too short", input: model.CourseInput{Name: strPtr("ab")}, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "surrogate pair plus one", input: model.CourseInput{Name: strPtr("😀a")}},
		{name: "three runes of two bytes", input: model.CourseInput{Name: strPtr("été")}},
		{name: "single surrogate pair", input: model.CourseInput{Name: strPtr("😀")}, wantMsg: `"name" length must be at least 3 characters long`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, "name", verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestFirstError_PassesThroughValidationError(t *testing.T) {
	in := &ValidationError{Field: "x", Message: "boom"}
	assert.Same(t, in, FirstError(in))
	assert.Equal(t, "plain", FirstError(errors.New("plain")).Message)
}

func newContext(method, contentType, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(method, "/api/courses", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.Request = req
	return c
}

func TestBind(t *testing.T) {
	const anyMessage = "*"
	const jsonType = "application/json"
	const formType = "application/x-www-form-urlencoded"

	tests := []struct {
		name        string
		contentType string
		body        string
		wantName    string
		wantMsg     string
	}{
		{name: "json", contentType: jsonType, body: `{"name":"physics"}`, wantName: "physics"},
		{name: "json with charset", contentType: jsonType + "; charset=utf-8", body: `{"name":"physics"}`, wantName: "physics"},
		{name: "form", contentType: formType, body: "name=history", wantName: "history"},
		{name: "empty json body", contentType: jsonType, body: "", wantMsg: `"name" is required`},
		{name: "empty object", contentType: jsonType, body: `{}`, wantMsg: `"name" is required`},
		{name: "null name", contentType: jsonType, body: `{"name":null}`, wantMsg: `"name" must be a string`},
		{name: "case variant does not shadow name", contentType: jsonType, body: `{"name":"ab","Name":"abcd"}`, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "case variant is not name", contentType: jsonType, body: `{"NAME":"abcd"}`, wantMsg: `"name" is required`},
		{name: "case variant after valid name", contentType: jsonType, body: `{"name":"abcd","Name":"x"}`, wantMsg: `"Name" is not allowed`},
		{name: "short name", contentType: jsonType, body: `{"name":"ab"}`, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "empty name", contentType: jsonType, body: `{"name":""}`, wantMsg: `"name" is not allowed to be empty`},
		{name: "number name", contentType: jsonType, body: `{"name":123}`, wantMsg: `"name" must be a string`},
		{name: "unknown key", contentType: jsonType, body: `{"name":"chemistry","id":7,"extra":true}`, wantMsg: `"id" is not allowed`},
		{name: "field error before unknown key", contentType: jsonType, body: `{"id":7,"name":"ab"}`, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "array body", contentType: jsonType, body: `["name"]`, wantMsg: `"value" must be an object`},
		{name: "malformed json", contentType: jsonType, body: `{"name":`, wantMsg: anyMessage},
		{name: "trailing data", contentType: jsonType, body: `{"name":"physics"} x`, wantMsg: anyMessage},
		{name: "astral characters count twice", contentType: jsonType, body: `{"name":"😀a"}`, wantName: "😀a"},
		{name: "single astral character", contentType: jsonType, body: `{"name":"😀"}`, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "form unknown key", contentType: formType, body: "name=history&zeta=1&alpha=2", wantMsg: `"alpha" is not allowed`},
		{name: "form short name", contentType: formType, body: "name=hi", wantMsg: `"name" length must be at least 3 characters long`},
		{name: "unsupported content type", contentType: "text/plain", body: "name=history", wantMsg: `"name" is required`},
		{name: "no content type", contentType: "", body: `{"name":"physics"}`, wantMsg: `"name" is required`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, tt.contentType, tt.body)

			var input model.CourseInput
			err := Bind(c, &input)

			if tt.wantMsg == "" {
				require.NoError(t, err)
				require.NotNil(t, input.Name)
				assert.Equal(t, tt.wantName, *input.Name)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			if tt.wantMsg == anyMessage {
				assert.NotEmpty(t, verr.Message)
				return
			}
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}
