package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
)

type dashModel struct {
	seq        int
	user       session.Session
	registered []model.Event
	organized  []model.Event
	loadingReg bool
	loadingOrg bool
	tab        int
	cursor     int
}

// enterDashboard gates on login, re-derives the user from the store and
// kicks off the section loads. Registered events always load; organized
// events only for the organizer role.
func (a App) enterDashboard() (tea.Model, tea.Cmd) {
	if !a.store.IsLoggedIn() {
		return a.gotoLogin()
	}
	if a.store.Token() == "" {
		return a.forceLogout()
	}

	user := a.store.User()
	if user.Role == "" {
		user.Role = model.RoleParticipant
	}

	a.page = pageDashboard
	a.dash = dashModel{
		seq:        a.dash.seq + 1,
		user:       user,
		loadingReg: true,
	}

	cmds := []tea.Cmd{loadRegistrationsCmd(a.svc, a.dash.seq)}
	if user.Role == model.RoleOrganizer {
		a.dash.loadingOrg = true
		cmds = append(cmds, loadOrganizedCmd(a.svc, a.dash.seq))
	}
	return a, tea.Batch(cmds...)
}

func (a App) applyRegistrationsLoaded(msg registrationsLoadedMsg) (tea.Model, tea.Cmd) {
	if a.page != pageDashboard || msg.seq != a.dash.seq {
		return a, nil
	}
	a.dash.loadingReg = false
	if msg.err != nil {
		if api.Kind(msg.err) == api.KindAuth {
			return a.forceLogout()
		}
		// Any other failure empties this section only.
		a.logger.Warn("registrations load failed", zap.Error(msg.err))
		a.dash.registered = nil
		return a, nil
	}
	a.dash.registered = msg.events
	return a, nil
}

func (a App) applyOrganizedLoaded(msg organizedLoadedMsg) (tea.Model, tea.Cmd) {
	if a.page != pageDashboard || msg.seq != a.dash.seq {
		return a, nil
	}
	a.dash.loadingOrg = false
	if msg.err != nil {
		if api.Kind(msg.err) == api.KindAuth {
			return a.forceLogout()
		}
		a.logger.Warn("organized events load failed", zap.Error(msg.err))
		a.dash.organized = nil
		return a, nil
	}
	a.dash.organized = msg.events
	return a, nil
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "esc", "b":
		return a.gotoHome()
	case "q":
		a.cancelSession()
		return a, tea.Quit
	case "tab":
		if a.dash.user.Role == model.RoleOrganizer {
			a.dash.tab = (a.dash.tab + 1) % 2
			a.dash.cursor = 0
		}
		return a, nil
	case "up", "k":
		if a.dash.cursor > 0 {
			a.dash.cursor--
		}
		return a, nil
	case "down", "j":
		if a.dash.cursor < len(a.dashList())-1 {
			a.dash.cursor++
		}
		return a, nil
	case "enter":
		list := a.dashList()
		if a.dash.cursor < len(list) {
			return a.openDetails(list[a.dash.cursor].ID)
		}
		return a, nil
	case "r":
		return a.enterDashboard()
	case "n":
		if a.dash.user.Role == model.RoleOrganizer {
			return a.gotoCreate()
		}
		return a, nil
	case "o":
		// Logout.
		if err := a.store.Clear(); err != nil {
			a.logger.Error("session clear failed", zap.Error(err))
		}
		return a.gotoHome()
	}
	return a, nil
}

func (a App) dashList() []model.Event {
	if a.dash.tab == 1 {
		return a.dash.organized
	}
	return a.dash.registered
}

func (a App) viewDashboard() string {
	d := a.dash
	var b strings.Builder

	b.WriteString(titleStyle.Render("EventHub") + "\n\n")
	b.WriteString(headerStyle.Render("Hello, "+d.user.Name+"!") + "\n")
	b.WriteString(dimStyle.Render(d.user.Email+" · "+d.user.Role) + "\n\n")

	tabs := "[ My registrations ]"
	if d.user.Role == model.RoleOrganizer {
		if d.tab == 0 {
			tabs = selectedStyle.Render("[ My registrations ]") + "  [ My events ]"
		} else {
			tabs = "[ My registrations ]  " + selectedStyle.Render("[ My events ]")
		}
	}
	b.WriteString(tabs + "\n\n")

	loading := d.loadingReg
	list := d.registered
	empty := "You have not registered for any event yet."
	if d.tab == 1 {
		loading = d.loadingOrg
		list = d.organized
		empty = "You have not created any event yet."
	}

	switch {
	case loading:
		b.WriteString(dimStyle.Render("Loading...") + "\n")
	case len(list) == 0:
		b.WriteString(dimStyle.Render(empty) + "\n")
	default:
		for i, e := range list {
			line := fmt.Sprintf("%s %s  %s  %s",
				categoryBadge(e.Category),
				truncate(e.Name, 40),
				formatDate(e.Date),
				capacityStyle(e.AttendeeCount(), e.Limit).Render(formatCapacity(e.AttendeeCount(), e.Limit)),
			)
			if d.tab == 0 {
				line += " " + registeredBadgeStyle.Render("registered")
			}
			if i == d.cursor {
				b.WriteString(selectedStyle.Render("> ") + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	help := "enter details · r reload · o log out · esc back · q quit"
	if d.user.Role == model.RoleOrganizer {
		help = "tab switch · n new event · " + help
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}
