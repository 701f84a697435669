package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

// categoryAll is the filter sentinel that matches every event.
const categoryAll = "all"

var categoryFilters = append([]string{categoryAll}, model.Categories...)

type homeModel struct {
	seq      int
	loading  bool
	events   []model.Event
	visible  []model.Event
	cursor   int
	search   textinput.Model
	typing   bool
	category int
	errText  string
}

func newHomeModel() homeModel {
	search := textinput.New()
	search.Placeholder = "Search events..."
	search.CharLimit = 100
	search.Width = 40
	return homeModel{search: search, loading: true}
}

// matchesSearch is a case-insensitive substring match over name,
// description and location. An empty term matches everything.
func matchesSearch(e model.Event, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.Location), term)
}

func matchesCategory(e model.Event, category string) bool {
	return category == categoryAll || e.Category == category
}

func visibleEvents(events []model.Event, term, category string) []model.Event {
	filtered := make([]model.Event, 0, len(events))
	for _, e := range events {
		if matchesSearch(e, term) && matchesCategory(e, category) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func (h *homeModel) refilter() {
	h.visible = visibleEvents(h.events, h.search.Value(), categoryFilters[h.category])
	if h.cursor >= len(h.visible) {
		h.cursor = len(h.visible) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

func (a App) applyEventsLoaded(msg eventsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.home.seq {
		// A newer load superseded this one.
		return a, nil
	}
	a.home.loading = false
	if msg.err != nil {
		a.home.errText = "could not load events"
		a.logger.Warn("event list load failed", zap.Error(msg.err))
		return a, nil
	}
	a.home.errText = ""
	a.home.events = msg.events
	a.home.refilter()
	return a, nil
}

func (a App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if a.home.typing {
		switch keyMsg.Type {
		case tea.KeyEsc:
			a.home.typing = false
			a.home.search.Blur()
			return a, nil
		case tea.KeyEnter:
			a.home.typing = false
			a.home.search.Blur()
			a.home.refilter()
			return a, nil
		}
		var cmd tea.Cmd
		a.home.search, cmd = a.home.search.Update(msg)
		a.home.refilter()
		return a, cmd
	}

	switch keyMsg.String() {
	case "q", "esc":
		a.cancelSession()
		return a, tea.Quit
	case "/":
		a.home.typing = true
		return a, a.home.search.Focus()
	case "tab":
		a.home.category = (a.home.category + 1) % len(categoryFilters)
		a.home.refilter()
		return a, nil
	case "shift+tab":
		a.home.category = (a.home.category + len(categoryFilters) - 1) % len(categoryFilters)
		a.home.refilter()
		return a, nil
	case "up", "k":
		if a.home.cursor > 0 {
			a.home.cursor--
		}
		return a, nil
	case "down", "j":
		if a.home.cursor < len(a.home.visible)-1 {
			a.home.cursor++
		}
		return a, nil
	case "enter":
		if a.home.cursor < len(a.home.visible) {
			return a.openDetails(a.home.visible[a.home.cursor].ID)
		}
		return a, nil
	case "r":
		a.home.seq++
		a.home.loading = true
		return a, loadEventsCmd(a.svc, a.home.seq)
	case "d":
		if a.store.IsLoggedIn() {
			return a.enterDashboard()
		}
		return a.gotoLogin()
	case "l":
		if !a.store.IsLoggedIn() {
			return a.gotoLogin()
		}
		return a, nil
	case "n":
		if a.store.User().Role == model.RoleOrganizer {
			return a.gotoCreate()
		}
		return a, nil
	}
	return a, nil
}

func (a App) viewHome() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EventHub"))
	if a.store.IsLoggedIn() {
		b.WriteString(dimStyle.Render("  logged in as " + a.store.User().Name))
	} else {
		b.WriteString(dimStyle.Render("  browsing as guest"))
	}
	b.WriteString("\n\n")

	b.WriteString("Search: " + a.home.search.View() + "\n")
	b.WriteString("Category: " + selectedStyle.Render(categoryFilters[a.home.category]) + "\n\n")

	switch {
	case a.home.loading:
		b.WriteString(dimStyle.Render("Loading events...") + "\n")
	case a.home.errText != "":
		b.WriteString(errorStyle.Render(a.home.errText) + "\n")
	case len(a.home.visible) == 0:
		b.WriteString(dimStyle.Render("No events match.") + "\n")
	default:
		for i, e := range a.home.visible {
			line := fmt.Sprintf("%s %s  %s %s  %s",
				categoryBadge(e.Category),
				truncate(e.Name, 40),
				formatDate(e.Date),
				formatTime(e.Date),
				capacityStyle(e.AttendeeCount(), e.Limit).Render(formatCapacity(e.AttendeeCount(), e.Limit)),
			)
			if e.Full() {
				line += " " + fullBadgeStyle.Render("FULL")
			}
			if i == a.home.cursor {
				b.WriteString(selectedStyle.Render("> ") + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("enter details · / search · tab category · d dashboard · r reload · q quit"))
	return b.String()
}
