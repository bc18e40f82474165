package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/techblog/core/internal/pkg/apperr"
)

func record(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("post not found: %s", "x"), http.StatusNotFound},
		{apperr.Forbidden("nope"), http.StatusForbidden},
		{apperr.InvalidArgument("bad page"), http.StatusBadRequest},
		{apperr.Conflict("email already registered"), http.StatusConflict},
		{apperr.StoreUnavailable(errors.New("timeout"), "save comment"), http.StatusServiceUnavailable},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := record(t, func(c *gin.Context) { Error(c, tc.err) })
		assert.Equal(t, tc.want, w.Code, "error %v", tc.err)
	}
}

func TestErrorClassifiesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("outer context: %w", apperr.NotFound("inner"))
	w := record(t, func(c *gin.Context) { Error(c, err) })
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOKWrapsSlices(t *testing.T) {
	w := record(t, func(c *gin.Context) { OK(c, []string{"a", "b"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["a","b"]}`, w.Body.String())
}

func TestPagedEnvelope(t *testing.T) {
	w := record(t, func(c *gin.Context) {
		Paged(c, []int{1, 2}, Pagination{Total: 2, CurrentPage: 1, TotalPage: 1, Size: 10})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"data": [1, 2],
		"pagination": {"total":2,"current_page":1,"total_page":1,"size":10,"has_next_page":false}
	}`, w.Body.String())
}
