package ui

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
)

// fakeService is a scriptable backend for view tests. Counters record how
// often the network would have been hit.
type fakeService struct {
	loginResp model.LoginResponse
	loginErr  error

	user    model.User
	userErr error

	events    []model.Event
	eventsErr error

	detail    model.EventWithAttendees
	detailErr error

	registered    []model.Event
	registeredErr error

	organized    []model.Event
	organizedErr error

	created     model.Event
	createErr   error
	pingErr     error
	registerErr error
	cancelErr   error

	loginCalls    int
	userCalls     int
	registerCalls int
	cancelCalls   int
}

func (f *fakeService) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeService) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return f.user, f.userErr
}

func (f *fakeService) CurrentUser(ctx context.Context) (model.User, error) {
	f.userCalls++
	return f.user, f.userErr
}

func (f *fakeService) Events(ctx context.Context) ([]model.Event, error) {
	return f.events, f.eventsErr
}

func (f *fakeService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	return f.created, f.createErr
}

func (f *fakeService) EventsByOrganizer(ctx context.Context) ([]model.Event, error) {
	return f.organized, f.organizedErr
}

func (f *fakeService) RegisteredEvents(ctx context.Context) ([]model.Event, error) {
	return f.registered, f.registeredErr
}

func (f *fakeService) EventByID(ctx context.Context, id string) (model.EventWithAttendees, error) {
	return f.detail, f.detailErr
}

func (f *fakeService) Register(ctx context.Context, eventID string) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakeService) CancelRegistration(ctx context.Context, eventID string) error {
	f.cancelCalls++
	return f.cancelErr
}

func (f *fakeService) Ping(ctx context.Context) error {
	return f.pingErr
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
}
