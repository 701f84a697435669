package resolver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

type fakeLookup struct {
	calls   atomic.Int32
	block   chan struct{}
	users   map[string]model.User
	failIDs map[string]bool
}

func (f *fakeLookup) UserByID(ctx context.Context, id string) (model.User, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.failIDs[id] {
		return model.User{}, errors.New("user not found")
	}
	return f.users[id], nil
}

func TestSecondLookupHitsCache(t *testing.T) {
	lookup := &fakeLookup{users: map[string]model.User{"u1": {Name: "Maria"}}}
	r := New(lookup, zap.NewNop())

	assert.Equal(t, "Maria", r.Resolve(context.Background(), "u1"))
	assert.Equal(t, "Maria", r.Resolve(context.Background(), "u1"))
	assert.Equal(t, int32(1), lookup.calls.Load(), "second call must be served from cache")
}

func TestEmptyIDShortCircuits(t *testing.T) {
	lookup := &fakeLookup{}
	r := New(lookup, zap.NewNop())

	assert.Equal(t, NameNotProvided, r.Resolve(context.Background(), ""))
	assert.Equal(t, int32(0), lookup.calls.Load())
}

func TestFailureNotCachedAndRetryAllowed(t *testing.T) {
	lookup := &fakeLookup{
		users:   map[string]model.User{"u1": {Name: "Maria"}},
		failIDs: map[string]bool{"u1": true},
	}
	r := New(lookup, zap.NewNop())

	assert.Equal(t, NameNotFound, r.Resolve(context.Background(), "u1"))

	// The backend recovered; a later call may try again and succeed.
	lookup.failIDs["u1"] = false
	assert.Equal(t, "Maria", r.Resolve(context.Background(), "u1"))
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestConcurrentLookupsCoalesce(t *testing.T) {
	lookup := &fakeLookup{
		users: map[string]model.User{"u1": {Name: "Maria"}},
		block: make(chan struct{}),
	}
	r := New(lookup, zap.NewNop())

	const callers = 8
	results := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(context.Background(), "u1")
		}(i)
	}

	close(lookup.block)
	wg.Wait()

	for _, name := range results {
		assert.Equal(t, "Maria", name)
	}
	assert.Equal(t, int32(1), lookup.calls.Load(), "in-flight lookups for one id must share a request")
}

func TestUserWithoutNameIsNotFound(t *testing.T) {
	lookup := &fakeLookup{users: map[string]model.User{"u1": {}}}
	r := New(lookup, zap.NewNop())

	assert.Equal(t, NameNotFound, r.Resolve(context.Background(), "u1"))
	// Nothing cached for a nameless user; the next call asks again.
	r.Resolve(context.Background(), "u1")
	assert.Equal(t, int32(2), lookup.calls.Load())
}
