package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func inFlightRouter(guard *InFlightGuard, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/customers/:customerId/payments", guard.Middleware("customerId"), handler)
	return router
}

func postPayment(router *gin.Engine, customerID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customerID+"/payments", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestInFlightGuardRejectsConcurrentSubmission(t *testing.T) {
	guard := NewInFlightGuard()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	router := inFlightRouter(guard, func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	customerID := uuid.New().String()

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		firstDone <- postPayment(router, customerID)
	}()
	<-entered

	// A second submission for the same customer while the first is
	// still executing is turned away, not executed.
	second := postPayment(router, customerID)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// A different customer is unaffected.
	other := postPayment(router, uuid.New().String())
	assert.Equal(t, http.StatusOK, other.Code)

	close(release)
	assert.Equal(t, http.StatusOK, (<-firstDone).Code)

	// Once the first finishes the key is free again.
	retry := postPayment(router, customerID)
	assert.Equal(t, http.StatusOK, retry.Code)
}

func TestInFlightGuardRejectsMalformedKey(t *testing.T) {
	router := inFlightRouter(NewInFlightGuard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := postPayment(router, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
