package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
	"github.com/JuanGabriel-Garcia/eventhub/internal/resolver"
)

// None of the backend operations are cancellable; navigating away simply
// drops the result when it arrives, which is what the sequence numbers on
// the load messages are for.

type eventsLoadedMsg struct {
	seq    int
	events []model.Event
	err    error
}

type detailsLoadedMsg struct {
	seq        int
	event      model.EventWithAttendees
	registered bool
	err        error
}

type organizerNameMsg struct {
	id   string
	name string
}

type registerResultMsg struct {
	eventID string
	err     error
}

type cancelResultMsg struct {
	eventID string
	err     error
}

type organizedLoadedMsg struct {
	seq    int
	events []model.Event
	err    error
}

type registrationsLoadedMsg struct {
	seq    int
	events []model.Event
	err    error
}

type loginResultMsg struct {
	err error
}

type signupResultMsg struct {
	err error
}

type pingResultMsg struct {
	err error
}

type eventCreatedMsg struct {
	event model.Event
	err   error
}

func loadEventsCmd(svc Service, seq int) tea.Cmd {
	return func() tea.Msg {
		events, err := svc.Events(context.Background())
		return eventsLoadedMsg{seq: seq, events: events, err: err}
	}
}

func loadDetailsCmd(svc Service, loggedIn bool, id string, seq int) tea.Cmd {
	return func() tea.Msg {
		event, err := svc.EventByID(context.Background(), id)
		if err != nil {
			return detailsLoadedMsg{seq: seq, err: err}
		}

		// Membership comes from re-fetching the registered-events list;
		// the backend exposes no cheaper endpoint. A failed check degrades
		// to "not registered".
		registered := false
		if loggedIn {
			if regs, regErr := svc.RegisteredEvents(context.Background()); regErr == nil {
				for _, r := range regs {
					if r.ID == id {
						registered = true
						break
					}
				}
			}
		}
		return detailsLoadedMsg{seq: seq, event: event, registered: registered}
	}
}

func resolveOrganizerCmd(names *resolver.Resolver, id string) tea.Cmd {
	return func() tea.Msg {
		return organizerNameMsg{id: id, name: names.Resolve(context.Background(), id)}
	}
}

func registerCmd(svc Service, eventID string) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{eventID: eventID, err: svc.Register(context.Background(), eventID)}
	}
}

func cancelCmd(svc Service, eventID string) tea.Cmd {
	return func() tea.Msg {
		return cancelResultMsg{eventID: eventID, err: svc.CancelRegistration(context.Background(), eventID)}
	}
}

func loadOrganizedCmd(svc Service, seq int) tea.Cmd {
	return func() tea.Msg {
		events, err := svc.EventsByOrganizer(context.Background())
		return organizedLoadedMsg{seq: seq, events: events, err: err}
	}
}

func loadRegistrationsCmd(svc Service, seq int) tea.Cmd {
	return func() tea.Msg {
		events, err := svc.RegisteredEvents(context.Background())
		return registrationsLoadedMsg{seq: seq, events: events, err: err}
	}
}

func pingCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		return pingResultMsg{err: svc.Ping(context.Background())}
	}
}

func createEventCmd(svc Service, req model.CreateEventRequest) tea.Cmd {
	return func() tea.Msg {
		event, err := svc.CreateEvent(context.Background(), req)
		return eventCreatedMsg{event: event, err: err}
	}
}
