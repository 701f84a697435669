package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
)

// regState is the closed set of registration states for the loaded event.
// "Full" is not a state: it is derived from the counters and overlays
// regUnregistered, so it can never coexist with regLoading.
type regState int

const (
	regAnonymous regState = iota
	regUnregistered
	regRegistered
	regLoading
)

type detailsModel struct {
	seq       int
	loading   bool
	event     detailsEvent
	state     regState
	organizer string
	message   string
	msgErr    bool
	errText   string
}

// detailsEvent is the view's working copy of the loaded event; the counter
// is mutated optimistically after register/cancel.
type detailsEvent struct {
	ID          string
	Name        string
	Description string
	Location    string
	Category    string
	Limit       int
	Count       int
	OrganizerID string
	Date        string
	Time        string
}

func (e detailsEvent) full() bool {
	return e.Limit > 0 && e.Count >= e.Limit
}

func (a App) openDetails(id string) (tea.Model, tea.Cmd) {
	a.page = pageDetails
	a.details = detailsModel{
		seq:       a.details.seq + 1,
		loading:   true,
		organizer: "...",
		event:     detailsEvent{ID: id},
	}
	return a, loadDetailsCmd(a.svc, a.store.IsLoggedIn(), id, a.details.seq)
}

func (a App) applyDetailsLoaded(msg detailsLoadedMsg) (tea.Model, tea.Cmd) {
	if a.page != pageDetails || msg.seq != a.details.seq {
		return a, nil
	}
	a.details.loading = false
	if msg.err != nil {
		a.details.errText = "could not load event details"
		a.logger.Warn("event details load failed", zap.Error(msg.err))
		return a, nil
	}

	a.details.event = detailsEvent{
		ID:          msg.event.ID,
		Name:        msg.event.Name,
		Description: msg.event.Description,
		Location:    msg.event.Location,
		Category:    msg.event.Category,
		Limit:       msg.event.Limit,
		Count:       msg.event.AttendeesCount,
		OrganizerID: msg.event.OrganizerID,
		Date:        formatDate(msg.event.Date),
		Time:        formatTime(msg.event.Date),
	}

	switch {
	case !a.store.IsLoggedIn():
		a.details.state = regAnonymous
	case msg.registered:
		a.details.state = regRegistered
	default:
		a.details.state = regUnregistered
	}

	return a, resolveOrganizerCmd(a.names, msg.event.OrganizerID)
}

func (a App) applyOrganizerName(msg organizerNameMsg) (tea.Model, tea.Cmd) {
	if a.page == pageDetails && a.details.event.OrganizerID == msg.id {
		a.details.organizer = msg.name
	}
	return a, nil
}

// tryRegister enforces the client-side gate: never while loading, never
// when full. Returns the command to run, or nil with a message set.
func (d *detailsModel) tryRegister() bool {
	switch d.state {
	case regLoading, regRegistered:
		return false
	case regAnonymous:
		d.message = "Log in to register for this event."
		d.msgErr = true
		return false
	}
	if d.event.full() {
		d.message = "This event is already full."
		d.msgErr = true
		return false
	}
	d.state = regLoading
	d.message = ""
	return true
}

func (d *detailsModel) tryCancel() bool {
	if d.state != regRegistered {
		return false
	}
	d.state = regLoading
	d.message = ""
	return true
}

// applyRegisterOutcome maps the backend's answer onto the state machine.
// Counters only move on success; failure classification never touches them.
// Returns true when the session must be cleared (auth failure).
func (d *detailsModel) applyRegisterOutcome(err error) bool {
	if err == nil {
		d.state = regRegistered
		d.event.Count++
		d.message = "Registered successfully."
		d.msgErr = false
		return false
	}

	switch api.Kind(err) {
	case api.KindAuth:
		return true
	case api.KindConflict:
		// Backend says we were registered all along; adopt that.
		d.state = regRegistered
		d.message = "You are already registered for this event."
		d.msgErr = true
	case api.KindCapacity:
		d.state = regUnregistered
		d.message = "This event is already full."
		d.msgErr = true
	case api.KindForbidden:
		d.state = regUnregistered
		d.message = "You cannot register for your own event."
		d.msgErr = true
	case api.KindNetwork:
		d.state = regUnregistered
		d.message = "Could not reach the server. Try again."
		d.msgErr = true
	default:
		d.state = regUnregistered
		d.message = "Registration failed. Try again."
		d.msgErr = true
	}
	return false
}

func (d *detailsModel) applyCancelOutcome(err error) bool {
	if err == nil {
		d.state = regUnregistered
		if d.event.Count > 0 {
			d.event.Count--
		}
		d.message = "Registration cancelled."
		d.msgErr = false
		return false
	}

	switch api.Kind(err) {
	case api.KindAuth:
		return true
	case api.KindNotRegistered:
		d.state = regUnregistered
		d.message = "You are not registered for this event."
		d.msgErr = true
	case api.KindNetwork:
		d.state = regRegistered
		d.message = "Could not reach the server. Try again."
		d.msgErr = true
	default:
		d.state = regRegistered
		d.message = "Could not cancel. Try again."
		d.msgErr = true
	}
	return false
}

func (a App) applyRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if a.page != pageDetails || a.details.event.ID != msg.eventID {
		return a, nil
	}
	if a.details.applyRegisterOutcome(msg.err) {
		return a.forceLogout()
	}
	return a, nil
}

func (a App) applyCancelResult(msg cancelResultMsg) (tea.Model, tea.Cmd) {
	if a.page != pageDetails || a.details.event.ID != msg.eventID {
		return a, nil
	}
	if a.details.applyCancelOutcome(msg.err) {
		return a.forceLogout()
	}
	return a, nil
}

// forceLogout is the one automatic recovery in the error design: any auth
// failure clears the whole session and sends the user to the login form.
func (a App) forceLogout() (tea.Model, tea.Cmd) {
	if err := a.store.Clear(); err != nil {
		a.logger.Error("session clear failed", zap.Error(err))
	}
	return a.gotoLogin()
}

func (a App) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case "enter", "s":
		if a.details.tryRegister() {
			return a, registerCmd(a.svc, a.details.event.ID)
		}
		return a, nil
	case "x":
		if a.details.tryCancel() {
			return a, cancelCmd(a.svc, a.details.event.ID)
		}
		return a, nil
	case "l":
		if a.details.state == regAnonymous {
			return a.gotoLogin()
		}
		return a, nil
	}
	return a, nil
}

func (a App) viewDetails() string {
	d := a.details
	var b strings.Builder

	b.WriteString(titleStyle.Render("EventHub") + "\n\n")

	if d.loading {
		b.WriteString(dimStyle.Render("Loading event...") + "\n")
		return b.String()
	}
	if d.errText != "" {
		b.WriteString(errorStyle.Render(d.errText) + "\n")
		b.WriteString("\n" + helpStyle.Render("esc back · q quit"))
		return b.String()
	}

	b.WriteString(headerStyle.Render(d.event.Name) + "  " + categoryBadge(d.event.Category))
	if d.event.full() {
		b.WriteString("  " + fullBadgeStyle.Render("FULL"))
	}
	b.WriteString("\n\n")

	b.WriteString(d.event.Description + "\n\n")
	b.WriteString("Date:      " + d.event.Date + " " + d.event.Time + "\n")
	b.WriteString("Location:  " + d.event.Location + "\n")
	b.WriteString("Organizer: " + d.organizer + "\n")
	b.WriteString("Attendees: " +
		capacityStyle(d.event.Count, d.event.Limit).Render(formatCapacity(d.event.Count, d.event.Limit)) + "\n\n")

	if d.message != "" {
		if d.msgErr {
			b.WriteString(errorStyle.Render(d.message) + "\n\n")
		} else {
			b.WriteString(successStyle.Render(d.message) + "\n\n")
		}
	}

	switch d.state {
	case regAnonymous:
		b.WriteString(dimStyle.Render("Log in to register for this event.") + "\n")
		b.WriteString("\n" + helpStyle.Render("l log in · esc back · q quit"))
	case regLoading:
		b.WriteString(dimStyle.Render("Working...") + "\n")
		b.WriteString("\n" + helpStyle.Render("esc back · q quit"))
	case regRegistered:
		b.WriteString(registeredBadgeStyle.Render("You are registered") + "\n")
		b.WriteString("\n" + helpStyle.Render("x cancel registration · esc back · q quit"))
	default:
		if d.event.full() {
			b.WriteString(dimStyle.Render("Event is full.") + "\n")
			b.WriteString("\n" + helpStyle.Render("esc back · q quit"))
		} else {
			b.WriteString("\n" + helpStyle.Render("s register · esc back · q quit"))
		}
	}
	return b.String()
}
