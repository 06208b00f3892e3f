package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

// InFlightGuard rejects a second mutating request for the same key
// while one is still outstanding. Cart mutations must not interleave
// and a double-clicked finalize or credit payment must not submit
// twice; this is the server-side counterpart of a UI debounce, not a
// distributed lock.
type InFlightGuard struct {
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewInFlightGuard creates a new in-flight guard
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{inFlight: make(map[uuid.UUID]struct{})}
}

func (g *InFlightGuard) acquire(key uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *InFlightGuard) release(key uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, key)
}

// Middleware serializes mutating requests keyed by the named UUID path
// parameter, e.g. sessionId for the cart surface or customerId for
// credit payments.
func (g *InFlightGuard) Middleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		key, err := uuid.Parse(c.Param(param))
		if err != nil {
			response.BadRequest(c, "Invalid "+param)
			c.Abort()
			return
		}

		if !g.acquire(key) {
			response.Error(c, apperror.ErrOperationInFlight)
			c.Abort()
			return
		}
		defer g.release(key)

		c.Next()
	}
}
