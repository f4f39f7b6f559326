package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jengzang/tracker-dashboard-go/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: trip", service.ErrSessionNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: dial tcp", service.ErrFetchFailed), http.StatusServiceUnavailable},
		{service.ErrPruneInProgress, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeServiceError(c, tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}
