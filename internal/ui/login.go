package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
)

type loginModel struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 100
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	return loginModel{email: email, password: password}
}

// validateLogin checks presence and basic shape before any network call.
func validateLogin(email, password string) string {
	if email == "" || password == "" {
		return "Please fill in all fields."
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return "Please enter a valid email address."
	}
	return ""
}

// doLogin runs the whole login sequence: authenticate, store the token,
// try to fetch the full profile, and fall back to locally-derived user
// fields when that secondary fetch fails. The logged-in flag is set in
// every success path.
func doLogin(svc Service, store *session.Store, logger *zap.Logger, email, password string) loginResultMsg {
	resp, err := svc.Login(context.Background(), email, password)
	if err != nil {
		// Leave nothing half-written behind a failed attempt.
		if clearErr := store.Clear(); clearErr != nil {
			logger.Error("session clear failed", zap.Error(clearErr))
		}
		return loginResultMsg{err: err}
	}
	if strings.TrimSpace(resp.Token) == "" {
		if clearErr := store.Clear(); clearErr != nil {
			logger.Error("session clear failed", zap.Error(clearErr))
		}
		return loginResultMsg{err: errors.New("authentication failed: empty token")}
	}

	// The token goes in first so the profile fetch below can use it.
	if err := store.SetToken(resp.Token); err != nil {
		return loginResultMsg{err: err}
	}

	user, err := svc.CurrentUser(context.Background())
	if err != nil {
		logger.Warn("profile fetch failed, using fallback fields", zap.Error(err))
		if err := store.SetSession(resp.Token, "", model.LocalPart(email), email, model.RoleParticipant); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{}
	}

	role := user.UserType
	if role == "" {
		role = model.RoleParticipant
	}
	if err := store.SetSession(resp.Token, user.ID, user.Name, user.Email, role); err != nil {
		return loginResultMsg{err: err}
	}
	return loginResultMsg{}
}

func loginCmd(svc Service, store *session.Store, logger *zap.Logger, email, password string) tea.Cmd {
	return func() tea.Msg {
		return doLogin(svc, store, logger, email, password)
	}
}

func loginErrorText(err error) string {
	switch api.Kind(err) {
	case api.KindAuth:
		return "Wrong email or password."
	case api.KindValidation:
		return "Invalid login data."
	case api.KindNetwork:
		return "Could not reach the server."
	case api.KindServer:
		return "Server error. Try again."
	}
	return "Login failed. Try again."
}

func (a App) applyLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if a.page == pageLogin {
		a.login.submitting = false
		if msg.err != nil {
			a.login.errText = loginErrorText(msg.err)
			return a, nil
		}
		return a.enterDashboard()
	}
	if a.page == pageRegister {
		a.register.submitting = false
		if msg.err != nil {
			// Account exists but the follow-up login failed; let the user
			// retry manually.
			a.register.errText = "Account created, but login failed: " + loginErrorText(msg.err)
			return a, nil
		}
		return a.enterDashboard()
	}
	return a, nil
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if keyMsg.String() == "ctrl+r" {
		return a.gotoRegister()
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return a.gotoHome()
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		a.login.focus = (a.login.focus + 1) % 2
		if a.login.focus == 0 {
			a.login.password.Blur()
			return a, a.login.email.Focus()
		}
		a.login.email.Blur()
		return a, a.login.password.Focus()
	case tea.KeyEnter:
		if a.login.submitting {
			return a, nil
		}
		email := strings.TrimSpace(a.login.email.Value())
		password := a.login.password.Value()
		if errText := validateLogin(email, password); errText != "" {
			a.login.errText = errText
			return a, nil
		}
		a.login.errText = ""
		a.login.submitting = true
		return a, loginCmd(a.svc, a.store, a.logger, email, password)
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a App) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EventHub") + "\n\n")
	b.WriteString(headerStyle.Render("Sign in") + "\n")
	b.WriteString(dimStyle.Render("Access your account to manage your events.") + "\n\n")

	if a.login.errText != "" {
		b.WriteString(errorStyle.Render(a.login.errText) + "\n\n")
	}

	b.WriteString("Email:    " + a.login.email.View() + "\n")
	b.WriteString("Password: " + a.login.password.View() + "\n\n")

	if a.login.submitting {
		b.WriteString(dimStyle.Render("Signing in...") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter submit · tab next field · esc back"))
	b.WriteString("\n" + dimStyle.Render("No account yet? Press ctrl+r to sign up."))
	return b.String()
}
