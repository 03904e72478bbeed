package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"patient-service/internal/domain"
	resp "patient-service/internal/transport/http/response"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", domain.NotFound("Patient not found with ID: %s", "x"), http.StatusNotFound, "Patient not found with ID: x"},
		{"conflict", domain.Conflict("taken"), http.StatusConflict, "taken"},
		{"bad request", domain.BadRequest("bad"), http.StatusBadRequest, "bad"},
		{"method", domain.MethodNotAllowed("nope"), http.StatusMethodNotAllowed, "nope"},
		{"internal", domain.Internal("find patient", errors.New("db down")), http.StatusInternalServerError, resp.MsgUnexpected},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, resp.MsgUnexpected},
		{"timeout", fmt.Errorf("find: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "request timed out"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			WriteError(c, zap.NewNop(), tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body resp.Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body.Message)
			assert.False(t, body.Success)
			assert.Nil(t, body.Data)
		})
	}
}
