// Package ui holds the Bubble Tea views: event browsing, event details with
// registration, the dashboard, and the auth and event-creation forms.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/resolver"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
)

// Service is the slice of the API client the views consume.
type Service interface {
	Login(ctx context.Context, email, password string) (model.LoginResponse, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	CurrentUser(ctx context.Context) (model.User, error)
	Events(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error)
	EventsByOrganizer(ctx context.Context) ([]model.Event, error)
	RegisteredEvents(ctx context.Context) ([]model.Event, error)
	EventByID(ctx context.Context, id string) (model.EventWithAttendees, error)
	Register(ctx context.Context, eventID string) error
	CancelRegistration(ctx context.Context, eventID string) error
	Ping(ctx context.Context) error
}

type page int

const (
	pageHome page = iota
	pageDetails
	pageDashboard
	pageLogin
	pageRegister
	pageCreate
)

// sessionChangedMsg fires when the session store notifies a change,
// the terminal equivalent of the browser storage event.
type sessionChangedMsg struct{}

type errMsg error

// App is the root model. All shared state (session, resolver, API client)
// is injected here; the pages own only their view state.
type App struct {
	svc    Service
	store  *session.Store
	names  *resolver.Resolver
	logger *zap.Logger

	sessionCh     <-chan struct{}
	cancelSession func()

	page   page
	width  int
	height int

	home     homeModel
	details  detailsModel
	dash     dashModel
	login    loginModel
	register registerModel
	create   createModel

	err error
}

func New(svc Service, store *session.Store, names *resolver.Resolver, logger *zap.Logger) App {
	ch, cancel := store.Subscribe()
	return App{
		svc:           svc,
		store:         store,
		names:         names,
		logger:        logger,
		sessionCh:     ch,
		cancelSession: cancel,
		page:          pageHome,
		home:          newHomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		create:        newCreateModel(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(loadEventsCmd(a.svc, a.home.seq), a.watchSession())
}

func (a App) watchSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.resize()

	case tea.FocusMsg:
		// Coming back to the terminal: another process may have logged in
		// or out in the meantime, so re-read the session file.
		if err := a.store.Reload(); err != nil {
			a.logger.Warn("session reload failed", zap.Error(err))
		}
		return a.syncSession(true)

	case sessionChangedMsg:
		m, cmd := a.syncSession(false)
		return m, tea.Batch(cmd, a.watchSessionOf(m))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.cancelSession()
			return a, tea.Quit
		}

	case errMsg:
		a.err = msg
		return a, nil

	// Results of in-flight network operations. Each carries the page it
	// belongs to implicitly through its type; stale completions are dropped
	// by sequence number.
	case eventsLoadedMsg:
		return a.applyEventsLoaded(msg)
	case detailsLoadedMsg:
		return a.applyDetailsLoaded(msg)
	case organizerNameMsg:
		return a.applyOrganizerName(msg)
	case registerResultMsg:
		return a.applyRegisterResult(msg)
	case cancelResultMsg:
		return a.applyCancelResult(msg)
	case organizedLoadedMsg:
		return a.applyOrganizedLoaded(msg)
	case registrationsLoadedMsg:
		return a.applyRegistrationsLoaded(msg)
	case loginResultMsg:
		return a.applyLoginResult(msg)
	case signupResultMsg:
		return a.applySignupResult(msg)
	case pingResultMsg:
		return a.applyPingResult(msg)
	case eventCreatedMsg:
		return a.applyEventCreated(msg)
	}

	switch a.page {
	case pageHome:
		return a.updateHome(msg)
	case pageDetails:
		return a.updateDetails(msg)
	case pageDashboard:
		return a.updateDashboard(msg)
	case pageLogin:
		return a.updateLogin(msg)
	case pageRegister:
		return a.updateRegister(msg)
	case pageCreate:
		return a.updateCreate(msg)
	}
	return a, nil
}

// watchSessionOf re-arms the subscription watcher after it fired. tea.Cmd
// closures capture the channel, so any App copy works.
func (a App) watchSessionOf(m tea.Model) tea.Cmd {
	if app, ok := m.(App); ok {
		return app.watchSession()
	}
	return a.watchSession()
}

// syncSession re-derives login-dependent state after the session changed
// underneath us. reload is true when triggered by window focus.
func (a App) syncSession(reload bool) (tea.Model, tea.Cmd) {
	loggedIn := a.store.IsLoggedIn()

	// A set flag without a token is an inconsistent session; force logout.
	if loggedIn && a.store.Token() == "" {
		a.logger.Warn("login flag set without token, clearing session")
		if err := a.store.Clear(); err != nil {
			a.logger.Error("session clear failed", zap.Error(err))
		}
		loggedIn = false
	}

	switch a.page {
	case pageDashboard:
		if !loggedIn {
			return a.gotoLogin()
		}
		if reload {
			return a.enterDashboard()
		}
		a.dash.user = a.store.User()
	case pageDetails:
		// Registration state depends on who is logged in; reload the page.
		if a.details.event.ID != "" {
			return a.openDetails(a.details.event.ID)
		}
	}
	return a, nil
}

func (a App) resize() (tea.Model, tea.Cmd) {
	w := a.width - 4
	if w < 20 {
		w = 20
	}
	a.home.search.Width = w / 2
	return a, nil
}

func (a App) View() string {
	switch a.page {
	case pageHome:
		return a.viewHome()
	case pageDetails:
		return a.viewDetails()
	case pageDashboard:
		return a.viewDashboard()
	case pageLogin:
		return a.viewLogin()
	case pageRegister:
		return a.viewRegister()
	case pageCreate:
		return a.viewCreate()
	}
	return ""
}

func (a App) gotoHome() (tea.Model, tea.Cmd) {
	a.page = pageHome
	a.home.seq++
	a.home.loading = true
	return a, loadEventsCmd(a.svc, a.home.seq)
}

func (a App) gotoLogin() (tea.Model, tea.Cmd) {
	a.page = pageLogin
	a.login = newLoginModel()
	return a, a.login.email.Focus()
}

func (a App) gotoRegister() (tea.Model, tea.Cmd) {
	a.page = pageRegister
	a.register = newRegisterModel()
	// The reference UI probes connectivity when the signup form opens, so
	// the user learns about a dead backend before typing everything in.
	return a, tea.Batch(a.register.name.Focus(), pingCmd(a.svc))
}

func (a App) gotoCreate() (tea.Model, tea.Cmd) {
	a.page = pageCreate
	a.create = newCreateModel()
	return a, a.create.name.Focus()
}
