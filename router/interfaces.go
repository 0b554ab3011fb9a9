package router

import (
	"context"

	"github.com/poiesic/askit/core"
)

// QueryHandler answers queries that are routed away from the corpus.
// Implementations must be thread-safe for concurrent use.
type QueryHandler interface {
	// HandleQuery answers a raw query through the external service and
	// returns the result in the canonical Response shape.
	// Returns an error if the service is unreachable or fails; the
	// caller is expected to degrade, not abort.
	HandleQuery(ctx context.Context, rawQuery string) (core.Response, error)
}
