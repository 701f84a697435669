package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JuanGabriel-Garcia/eventhub/internal/model"
)

var filterFixture = []model.Event{
	{ID: "1", Name: "GopherCon", Description: "Go conference", Location: "Berlin", Category: "tecnologia"},
	{ID: "2", Name: "Art Night", Description: "Painting and wine", Location: "Lisbon", Category: "arte"},
	{ID: "3", Name: "Business Summit", Description: "Networking in BERLIN", Location: "Munich", Category: "negocios"},
}

func ids(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestFilterIdentity(t *testing.T) {
	// Empty term plus the "all" category is the identity function.
	got := visibleEvents(filterFixture, "", categoryAll)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	// Name match, any case.
	assert.Equal(t, []string{"1"}, ids(visibleEvents(filterFixture, "gOpHeR", categoryAll)))
	// Description match.
	assert.Equal(t, []string{"2"}, ids(visibleEvents(filterFixture, "WINE", categoryAll)))
	// Location and description both contain "berlin".
	assert.Equal(t, []string{"1", "3"}, ids(visibleEvents(filterFixture, "berlin", categoryAll)))
	// Category is not part of the search text.
	assert.Empty(t, ids(visibleEvents(filterFixture, "tecnologia", categoryAll)))
}

func TestFilterCategoryExactMatch(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(visibleEvents(filterFixture, "", "arte")))
	// Equality, not substring: "art" is not a category.
	assert.Empty(t, ids(visibleEvents(filterFixture, "", "art")))
}

func TestFilterCombines(t *testing.T) {
	assert.Equal(t, []string{"3"}, ids(visibleEvents(filterFixture, "berlin", "negocios")))
	assert.Empty(t, ids(visibleEvents(filterFixture, "berlin", "arte")))
}
