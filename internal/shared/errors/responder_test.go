package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

func respondWith(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart/7", nil)
	responder.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespondError_UsesMapper(t *testing.T) {
	responder := NewResponder(MapSentinel(errMissing, ErrNotFound))
	rec, problem := respondWith(t, responder, fmt.Errorf("lookup: %w", errMissing))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, TypeNotFound, problem.Type)
	require.Equal(t, "lookup: missing", problem.Detail)
	require.Equal(t, "/cart/7", problem.Instance)
}

func TestRespondError_PassesProblemThrough(t *testing.T) {
	rec, problem := respondWith(t, NewResponder(), ErrConflict.WithDetail("dup"))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "dup", problem.Detail)
}

func TestRespondError_DefaultsToInternal(t *testing.T) {
	rec, problem := respondWith(t, NewResponder(), errors.New("kaput"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, TypeInternal, problem.Type)
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	problem := NewNotFoundProblem("cart entry", "7")
	require.Equal(t, "7", problem.Extensions["identifier"])
	require.Nil(t, ErrNotFound.Extensions)
}
