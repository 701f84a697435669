package model

import (
	"strings"
	"time"
)

// User roles as the backend reports them in the userType field.
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
)

// User represents an EventHub account.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	CreatedAt string `json:"created_at"`
}

// Event is the list-view shape: attendees come back as a list of user IDs.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	OrganizerID string    `json:"organizer_id"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	Category    string    `json:"category"`
	Limit       int       `json:"limit"`
}

// EventWithAttendees is the detail-view shape. The attendees_count field is
// always present; the expanded attendees list only for the organizer.
type EventWithAttendees struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	OrganizerID    string    `json:"organizer_id"`
	Attendees      []User    `json:"attendees"`
	AttendeesCount int       `json:"attendees_count"`
	CreatedAt      time.Time `json:"created_at"`
	Category       string    `json:"category"`
	Limit          int       `json:"limit"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Limit       int    `json:"limit"`
}

// Categories are the tags the backend knows about. Anything else renders
// with the default style.
var Categories = []string{
	"tecnologia",
	"negocios",
	"design",
	"educacao",
	"saude",
	"arte",
	"esporte",
	"outros",
}

// Full reports whether an event has reached its attendee limit.
// A limit of zero means unbounded, so it is never full.
func Full(attendeeCount, limit int) bool {
	return limit > 0 && attendeeCount >= limit
}

func (e Event) AttendeeCount() int { return len(e.Attendees) }

func (e Event) Full() bool { return Full(len(e.Attendees), e.Limit) }

func (e EventWithAttendees) Full() bool { return Full(e.AttendeesCount, e.Limit) }

// LocalPart derives a display name from an email address, used when the
// profile fetch after login fails.
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
