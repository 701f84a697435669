package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "session.json")
	return NewStore(file, zap.NewNop()), file
}

func TestSetAndClear(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "participant"))
	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, "abc", store.Token())
	assert.Equal(t, "Maria", store.User().Name)

	require.NoError(t, store.Clear())

	// Every field must be gone after a clear, not just the flag.
	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.Token())
	assert.Equal(t, Session{}, store.User())
}

func TestSetTokenDoesNotLogIn(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SetToken("abc"))
	assert.Equal(t, "abc", store.Token())
	assert.False(t, store.IsLoggedIn(), "the flag is only set by SetSession")
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Load())
	assert.False(t, store.IsLoggedIn())
}

func TestPersistenceAcrossInstances(t *testing.T) {
	store, file := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "organizer"))

	reopened := NewStore(file, zap.NewNop())
	require.NoError(t, reopened.Load())
	assert.True(t, reopened.IsLoggedIn())
	assert.Equal(t, "organizer", reopened.User().Role)
}

func TestReloadSeesOtherProcessChanges(t *testing.T) {
	store, file := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "participant"))

	// A second "tab" logs out.
	other := NewStore(file, zap.NewNop())
	require.NoError(t, other.Load())
	require.NoError(t, other.Clear())

	assert.True(t, store.IsLoggedIn(), "stale until reloaded")
	require.NoError(t, store.Reload())
	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.Token())
}

func TestSubscribeNotifies(t *testing.T) {
	store, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	defer cancel()

	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "participant"))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after SetSession")
	}

	require.NoError(t, store.Clear())
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after Clear")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	cancel()

	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "participant"))
	select {
	case <-ch:
		t.Fatal("notification after unsubscribe")
	default:
	}
}
