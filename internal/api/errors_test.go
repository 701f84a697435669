package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The backend reports business failures as free text; these literals are
// part of the de facto contract and must keep classifying correctly.
func TestClassifyMessageLiterals(t *testing.T) {
	tests := []struct {
		message string
		want    ErrorKind
	}{
		{"Attendee already exists", KindConflict},
		{"user with email already exists", KindConflict},
		{"duplicate key value", KindConflict},
		{"Event attendee limit reached", KindCapacity},
		{"Organizer cannot be an attendee", KindForbidden},
		{"Attendee not subscribed to the event", KindNotRegistered},
		{"user not registered", KindNotRegistered},
		{"something completely different", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyMessage(tt.message), "message %q", tt.message)
	}
}

func TestClassifyStatusTakesPrecedence(t *testing.T) {
	// 401 is always an auth failure, whatever the body says.
	assert.Equal(t, KindAuth, classify(401, "Attendee already exists"))
	assert.Equal(t, KindServer, classify(500, "boom"))
	assert.Equal(t, KindServer, classify(503, ""))

	// 4xx falls back to the message, then to validation for 400.
	assert.Equal(t, KindCapacity, classify(400, "Event attendee limit reached"))
	assert.Equal(t, KindValidation, classify(400, "bad payload"))
	assert.Equal(t, KindUnknown, classify(404, "nothing here"))
}

func TestKindUnwrapsChains(t *testing.T) {
	base := &Error{Kind: KindCapacity, Status: 400, Message: "Event attendee limit reached"}
	wrapped := fmt.Errorf("register: %w", base)
	assert.Equal(t, KindCapacity, Kind(wrapped))
	assert.Equal(t, KindUnknown, Kind(errors.New("plain")))
	assert.Equal(t, KindUnknown, Kind(nil))
}
