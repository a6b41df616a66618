package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newContext()
	c.Set(ContextKeyRequestID, "req-1")

	Success(c, http.StatusOK, gin.H{"status": "ok"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data     map[string]string `json:"data"`
		Error    *ErrorBody        `json:"error"`
		Metadata Metadata          `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data["status"])
	assert.Nil(t, body.Error)
	assert.Equal(t, "req-1", body.Metadata.RequestID)
	assert.NotEmpty(t, body.Metadata.Timestamp)
}

func TestFail(t *testing.T) {
	c, w := newContext()

	Fail(c, http.StatusNotFound, ErrNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrNotFound, body.Error.Code)
	assert.Equal(t, GetMessage(ErrNotFound), body.Error.Message)
	assert.NotEmpty(t, body.Metadata.RequestID, "falls back to a generated id")
}

func TestAbortFail(t *testing.T) {
	c, w := newContext()

	AbortFail(c, http.StatusTooManyRequests, ErrRateLimitExceeded)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), string(ErrRateLimitExceeded))
}

func TestText(t *testing.T) {
	c, w := newContext()

	Text(c, http.StatusBadRequest, `"name" is required`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"name" is required`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestGetMessage_Unknown(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred.", GetMessage(ErrCode("NOPE")))
}
