package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

// eventDateLayout is what the backend accepts for new events.
const eventDateLayout = "2006-01-02T15:04"

type createModel struct {
	name        textinput.Model
	description textinput.Model
	date        textinput.Model
	location    textinput.Model
	limit       textinput.Model
	category    int
	focus       int
	submitting  bool
	errText     string
}

func newCreateModel() createModel {
	name := textinput.New()
	name.Placeholder = "Event name"
	name.CharLimit = 100
	name.Width = 40

	description := textinput.New()
	description.Placeholder = "What is it about?"
	description.CharLimit = 500
	description.Width = 40

	date := textinput.New()
	date.Placeholder = "2025-07-26T14:30"
	date.CharLimit = 16
	date.Width = 40

	location := textinput.New()
	location.Placeholder = "Where does it happen?"
	location.CharLimit = 100
	location.Width = 40

	limit := textinput.New()
	limit.Placeholder = "0 = unlimited"
	limit.CharLimit = 6
	limit.Width = 40

	return createModel{
		name:        name,
		description: description,
		date:        date,
		location:    location,
		limit:       limit,
	}
}

// buildEventRequest validates the form and produces the request, or an
// error text for the user.
func buildEventRequest(name, description, date, location, category, limit string) (model.CreateEventRequest, string) {
	var req model.CreateEventRequest

	if name == "" || location == "" || date == "" {
		return req, "Name, date and location are required."
	}
	if _, err := time.Parse(eventDateLayout, date); err != nil {
		return req, "Date must look like 2025-07-26T14:30."
	}
	limitValue := 0
	if limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			return req, "Limit must be zero or a positive number."
		}
		limitValue = parsed
	}

	return model.CreateEventRequest{
		Name:        name,
		Description: description,
		Date:        date,
		Location:    location,
		Category:    category,
		Limit:       limitValue,
	}, ""
}

func (a App) applyEventCreated(msg eventCreatedMsg) (tea.Model, tea.Cmd) {
	if a.page != pageCreate {
		return a, nil
	}
	a.create.submitting = false
	if msg.err != nil {
		if api.Kind(msg.err) == api.KindAuth {
			return a.forceLogout()
		}
		switch api.Kind(msg.err) {
		case api.KindValidation:
			a.create.errText = "Invalid event data: " + msg.err.Error()
		case api.KindNetwork:
			a.create.errText = "Could not reach the server."
		default:
			a.create.errText = "Could not create the event. Try again."
		}
		return a, nil
	}
	a.logger.Info("event created", zap.String("id", msg.event.ID), zap.String("name", msg.event.Name))
	return a.enterDashboard()
}

func (a App) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	inputs := []*textinput.Model{
		&a.create.name, &a.create.description, &a.create.date,
		&a.create.location, &a.create.limit,
	}

	// The category picker sits after the text fields in the focus order.
	const categoryFocus = 5

	switch keyMsg.Type {
	case tea.KeyEsc:
		return a.enterDashboard()
	case tea.KeyTab, tea.KeyDown:
		if a.create.focus < len(inputs) {
			inputs[a.create.focus].Blur()
		}
		a.create.focus = (a.create.focus + 1) % (len(inputs) + 1)
		if a.create.focus < len(inputs) {
			return a, inputs[a.create.focus].Focus()
		}
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		if a.create.focus < len(inputs) {
			inputs[a.create.focus].Blur()
		}
		a.create.focus = (a.create.focus + len(inputs)) % (len(inputs) + 1)
		if a.create.focus < len(inputs) {
			return a, inputs[a.create.focus].Focus()
		}
		return a, nil
	case tea.KeyLeft, tea.KeyRight:
		if a.create.focus == categoryFocus {
			delta := 1
			if keyMsg.Type == tea.KeyLeft {
				delta = len(model.Categories) - 1
			}
			a.create.category = (a.create.category + delta) % len(model.Categories)
			return a, nil
		}
	case tea.KeyEnter:
		if a.create.submitting {
			return a, nil
		}
		req, errText := buildEventRequest(
			strings.TrimSpace(a.create.name.Value()),
			strings.TrimSpace(a.create.description.Value()),
			strings.TrimSpace(a.create.date.Value()),
			strings.TrimSpace(a.create.location.Value()),
			model.Categories[a.create.category],
			strings.TrimSpace(a.create.limit.Value()),
		)
		if errText != "" {
			a.create.errText = errText
			return a, nil
		}
		a.create.errText = ""
		a.create.submitting = true
		return a, createEventCmd(a.svc, req)
	}

	if a.create.focus < len(inputs) {
		var cmd tea.Cmd
		*inputs[a.create.focus], cmd = inputs[a.create.focus].Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) viewCreate() string {
	c := a.create
	var b strings.Builder
	b.WriteString(titleStyle.Render("EventHub") + "\n\n")
	b.WriteString(headerStyle.Render("Create event") + "\n\n")

	if c.errText != "" {
		b.WriteString(errorStyle.Render(c.errText) + "\n\n")
	}

	b.WriteString("Name:        " + c.name.View() + "\n")
	b.WriteString("Description: " + c.description.View() + "\n")
	b.WriteString("Date:        " + c.date.View() + "\n")
	b.WriteString("Location:    " + c.location.View() + "\n")
	b.WriteString("Limit:       " + c.limit.View() + "\n")

	category := categoryBadge(model.Categories[c.category])
	if c.focus == 5 {
		b.WriteString("Category:    " + selectedStyle.Render("< ") + category + selectedStyle.Render(" >") + "\n")
	} else {
		b.WriteString("Category:    " + category + "\n")
	}

	if c.submitting {
		b.WriteString("\n" + dimStyle.Render("Creating event...") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter submit · tab next field · ←/→ category · esc back"))
	return b.String()
}
