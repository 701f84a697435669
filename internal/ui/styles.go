package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2563EB"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EA580C"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505050"))

	fullBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#DC2626")).
			Padding(0, 1)

	registeredBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#166534")).
				Background(lipgloss.Color("#DCFCE7")).
				Padding(0, 1)
)

// One color per known category tag; anything the backend invents later
// falls back to the default.
var categoryColors = map[string]string{
	"tecnologia": "#3B82F6",
	"negocios":   "#22C55E",
	"design":     "#A855F7",
	"educacao":   "#F97316",
	"saude":      "#EF4444",
	"arte":       "#EC4899",
	"esporte":    "#6366F1",
	"outros":     "#9CA3AF",
}

const defaultCategoryColor = "#9CA3AF"

func categoryBadge(category string) string {
	color, ok := categoryColors[category]
	if !ok {
		color = defaultCategoryColor
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render("[" + category + "]")
}

// capacityStyle mirrors the reference coloring: neutral when unbounded,
// red at capacity, orange from 80% up, green otherwise.
func capacityStyle(count, limit int) lipgloss.Style {
	if limit == 0 {
		return dimStyle
	}
	percentage := float64(count) / float64(limit) * 100
	switch {
	case percentage >= 100:
		return errorStyle
	case percentage >= 80:
		return warnStyle
	default:
		return successStyle
	}
}
