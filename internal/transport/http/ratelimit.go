package http

import (
	"golang.org/x/time/rate"

	"github.com/vovakirdan/roomchat-server/internal/proto"
)

// rateLimiter throttles inbound events of a single connection.
type rateLimiter struct {
	limiter *rate.Limiter
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if perSecond <= 0 {
		return &rateLimiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limiter == nil {
		return true
	}
	return r.limiter.Allow()
}

// throttled reports whether event counts against the limiter. Joins, leaves
// and member queries always pass so a client never waits on a dropped reply.
func throttled(event string) bool {
	switch event {
	case proto.EventMessage, proto.EventTypeStart, proto.EventTypeStop:
		return true
	default:
		return false
	}
}
