// Package resolver maps organizer IDs to display names through a
// read-through cache, so several cards on one screen don't each hit the
// users endpoint for the same organizer.
package resolver

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

// Sentinels shown in place of a real name.
const (
	NameNotProvided = "Organizer not provided"
	NameNotFound    = "Organizer not found"
)

// Lookup is the slice of the API client the resolver needs.
type Lookup interface {
	UserByID(ctx context.Context, id string) (model.User, error)
}

type Resolver struct {
	mu       sync.Mutex
	names    map[string]string
	inflight map[string]chan struct{}
	api      Lookup
	logger   *zap.Logger
}

func New(api Lookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		names:    make(map[string]string),
		inflight: make(map[string]chan struct{}),
		api:      api,
		logger:   logger,
	}
}

// Resolve returns the display name for an organizer ID, fetching it at most
// once per ID. Cached entries are write-once for the process lifetime.
// Failed lookups cache nothing, so a later call may retry.
func (r *Resolver) Resolve(ctx context.Context, id string) string {
	if id == "" {
		return NameNotProvided
	}

	r.mu.Lock()
	if name, ok := r.names[id]; ok {
		r.mu.Unlock()
		return name
	}
	if done, ok := r.inflight[id]; ok {
		// Another caller is already fetching this ID; wait for it.
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return NameNotFound
		}
		r.mu.Lock()
		name, ok := r.names[id]
		r.mu.Unlock()
		if ok {
			return name
		}
		return NameNotFound
	}

	done := make(chan struct{})
	r.inflight[id] = done
	r.mu.Unlock()

	user, err := r.api.UserByID(ctx, id)

	r.mu.Lock()
	delete(r.inflight, id)
	if err != nil || user.Name == "" {
		r.mu.Unlock()
		close(done)
		if err != nil {
			r.logger.Warn("organizer lookup failed", zap.String("id", id), zap.Error(err))
		}
		return NameNotFound
	}
	r.names[id] = user.Name
	r.mu.Unlock()
	close(done)

	return user.Name
}
