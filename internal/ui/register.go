package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

const minPasswordLen = 6

type registerModel struct {
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	confirm    textinput.Model
	focus      int
	submitting bool
	errText    string
	warnText   string
}

func newRegisterModel() registerModel {
	name := textinput.New()
	name.Placeholder = "Your full name"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 100
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "At least 6 characters"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	confirm := textinput.New()
	confirm.Placeholder = "Confirm your password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 100
	confirm.Width = 40

	return registerModel{name: name, email: email, password: password, confirm: confirm}
}

func validateSignup(name, email, password, confirm string) string {
	if name == "" || email == "" || password == "" {
		return "Please fill in all fields."
	}
	if !strings.Contains(email, "@") {
		return "Please enter a valid email address."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 6 characters long."
	}
	return ""
}

// signupCmd creates the account and, on success, immediately runs the same
// login sequence the login form uses so the user ends up with a session in
// one flow.
func signupCmd(a App, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.svc.CreateUser(context.Background(), model.CreateUserRequest{
			Name:     name,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return signupResultMsg{err: err}
		}
		return doLogin(a.svc, a.store, a.logger, email, password)
	}
}

func signupErrorText(err error) string {
	switch api.Kind(err) {
	case api.KindConflict:
		return "This email is already registered. Sign in instead."
	case api.KindValidation:
		return "Invalid data: " + err.Error()
	case api.KindNetwork:
		return "Could not reach the server."
	case api.KindServer:
		return "Server error. Try again."
	}
	return "Could not create the account. Try again."
}

func (a App) applySignupResult(msg signupResultMsg) (tea.Model, tea.Cmd) {
	if a.page != pageRegister {
		return a, nil
	}
	a.register.submitting = false
	if msg.err != nil {
		a.register.errText = signupErrorText(msg.err)
	}
	return a, nil
}

func (a App) applyPingResult(msg pingResultMsg) (tea.Model, tea.Cmd) {
	if a.page != pageRegister {
		return a, nil
	}
	if msg.err != nil {
		a.register.warnText = "The server does not seem to be reachable."
	} else {
		a.register.warnText = ""
	}
	return a, nil
}

func (a App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	inputs := []*textinput.Model{
		&a.register.name, &a.register.email, &a.register.password, &a.register.confirm,
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return a.gotoLogin()
	case tea.KeyTab, tea.KeyDown:
		inputs[a.register.focus].Blur()
		a.register.focus = (a.register.focus + 1) % len(inputs)
		return a, inputs[a.register.focus].Focus()
	case tea.KeyShiftTab, tea.KeyUp:
		inputs[a.register.focus].Blur()
		a.register.focus = (a.register.focus + len(inputs) - 1) % len(inputs)
		return a, inputs[a.register.focus].Focus()
	case tea.KeyEnter:
		if a.register.submitting {
			return a, nil
		}
		name := strings.TrimSpace(a.register.name.Value())
		email := strings.TrimSpace(a.register.email.Value())
		password := a.register.password.Value()
		confirm := a.register.confirm.Value()
		if errText := validateSignup(name, email, password, confirm); errText != "" {
			a.register.errText = errText
			return a, nil
		}
		a.register.errText = ""
		a.register.submitting = true
		return a, signupCmd(a, name, email, password)
	}

	var cmd tea.Cmd
	*inputs[a.register.focus], cmd = inputs[a.register.focus].Update(msg)
	return a, cmd
}

func (a App) viewRegister() string {
	r := a.register
	var b strings.Builder
	b.WriteString(titleStyle.Render("EventHub") + "\n\n")
	b.WriteString(headerStyle.Render("Create account") + "\n")
	b.WriteString(dimStyle.Render("Sign up to start joining events.") + "\n\n")

	if r.warnText != "" {
		b.WriteString(warnStyle.Render(r.warnText) + "\n\n")
	}
	if r.errText != "" {
		b.WriteString(errorStyle.Render(r.errText) + "\n\n")
	}

	b.WriteString("Name:             " + r.name.View() + "\n")
	b.WriteString("Email:            " + r.email.View() + "\n")
	b.WriteString("Password:         " + r.password.View() + "\n")
	b.WriteString("Confirm password: " + r.confirm.View() + "\n\n")

	if r.submitting {
		b.WriteString(dimStyle.Render("Creating account...") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter submit · tab next field · esc back to login"))
	return b.String()
}
