package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/resolver"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
)

type noopLookup struct{}

func (noopLookup) UserByID(ctx context.Context, id string) (model.User, error) {
	return model.User{Name: "Someone"}, nil
}

func newTestApp(t *testing.T, svc Service, store *session.Store) App {
	t.Helper()
	return New(svc, store, resolver.New(noopLookup{}, zap.NewNop()), zap.NewNop())
}

func TestDashboardRedirectsWhenLoggedOut(t *testing.T) {
	app := newTestApp(t, &fakeService{}, newTestStore(t))

	m, _ := app.enterDashboard()
	assert.Equal(t, pageLogin, m.(App).page)
}

func TestDashboardForcesLogoutOnInconsistentSession(t *testing.T) {
	// Flag set but no token: the defensive path must clear everything.
	store := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "participant"))
	require.NoError(t, store.SetToken(""))

	app := newTestApp(t, &fakeService{}, store)
	m, _ := app.enterDashboard()

	assert.Equal(t, pageLogin, m.(App).page)
	assert.False(t, store.IsLoggedIn())
}

func TestDashboardDefaultsMissingRoleToParticipant(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", ""))

	app := newTestApp(t, &fakeService{}, store)
	m, _ := app.enterDashboard()

	got := m.(App)
	assert.Equal(t, pageDashboard, got.page)
	assert.Equal(t, model.RoleParticipant, got.dash.user.Role)
	assert.False(t, got.dash.loadingOrg, "participants never load organized events")
}

func TestDashboardAuthFailureClearsSession(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "organizer"))

	app := newTestApp(t, &fakeService{}, store)
	m, _ := app.enterDashboard()
	got := m.(App)

	authErr := &api.Error{Kind: api.KindAuth, Status: 401, Message: "token expired"}
	m, _ = got.applyRegistrationsLoaded(registrationsLoadedMsg{seq: got.dash.seq, err: authErr})

	assert.Equal(t, pageLogin, m.(App).page)
	assert.False(t, store.IsLoggedIn())
}

func TestDashboardSectionFailureDegradesToEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetSession("abc", "u1", "Maria", "m@x.com", "organizer"))

	app := newTestApp(t, &fakeService{}, store)
	m, _ := app.enterDashboard()
	got := m.(App)

	// One section dies with a non-auth error; the other still arrives.
	m, _ = got.applyOrganizedLoaded(organizedLoadedMsg{
		seq: got.dash.seq,
		err: &api.Error{Kind: api.KindServer, Status: 500, Message: "boom"},
	})
	got = m.(App)
	m, _ = got.applyRegistrationsLoaded(registrationsLoadedMsg{
		seq:    got.dash.seq,
		events: []model.Event{{ID: "e1"}},
	})
	got = m.(App)

	assert.Equal(t, pageDashboard, got.page)
	assert.True(t, store.IsLoggedIn())
	assert.Empty(t, got.dash.organized)
	assert.Len(t, got.dash.registered, 1)
}

func TestStaleEventLoadIsDropped(t *testing.T) {
	app := newTestApp(t, &fakeService{}, newTestStore(t))
	app.home.seq = 2
	app.home.loading = true

	// A slow response from an older load must not overwrite newer state.
	m, _ := app.applyEventsLoaded(eventsLoadedMsg{seq: 1, events: []model.Event{{ID: "old"}}})
	got := m.(App)
	assert.True(t, got.home.loading)
	assert.Empty(t, got.home.events)

	m, _ = got.applyEventsLoaded(eventsLoadedMsg{seq: 2, events: []model.Event{{ID: "new"}}})
	got = m.(App)
	assert.False(t, got.home.loading)
	require.Len(t, got.home.events, 1)
	assert.Equal(t, "new", got.home.events[0].ID)
}

func TestStaleDetailsLoadIsDropped(t *testing.T) {
	app := newTestApp(t, &fakeService{}, newTestStore(t))
	m, _ := app.openDetails("e1")
	got := m.(App)

	m, _ = got.applyDetailsLoaded(detailsLoadedMsg{
		seq:   got.details.seq - 1,
		event: model.EventWithAttendees{ID: "stale"},
	})
	got = m.(App)
	assert.True(t, got.details.loading)
	assert.NotEqual(t, "stale", got.details.event.ID)
}
