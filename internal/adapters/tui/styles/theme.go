package styles

import (
	"github.com/charmbracelet/lipgloss"

	"tagmanager/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Category colors
	categoryColors = map[domain.Category]lipgloss.Color{
		domain.CategoryConcept:    lipgloss.Color("#6366F1"), // Indigo
		domain.CategoryLibrary:    lipgloss.Color("#8B5CF6"), // Violet
		domain.CategoryLanguage:   lipgloss.Color("#EC4899"), // Pink
		domain.CategoryDomain:     lipgloss.Color("#F97316"), // Orange
		domain.CategoryConstraint: lipgloss.Color("#14B8A6"), // Teal
		domain.CategoryTask:       lipgloss.Color("#60A5FA"), // Blue
		domain.CategoryAgentic:    lipgloss.Color("#EAB308"), // Yellow
		domain.CategoryContext:    lipgloss.Color("#A3A3A3"), // Neutral
	}

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tabs
	Tab = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	// Tag list
	TagID = lipgloss.NewStyle().
		Bold(true)

	TagSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	DifficultyBadge = lipgloss.NewStyle().
			Foreground(Warning)

	// Status line
	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// CategoryColor returns the accent color of a category
func CategoryColor(c domain.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return Primary
}

// CategoryLabel renders a category name in its accent color
func CategoryLabel(c domain.Category) string {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Bold(true).Render(string(c))
}
