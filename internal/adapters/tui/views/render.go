package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"tagmanager/internal/adapters/tui/styles"
	"tagmanager/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderErrorList renders validation errors one per line
func RenderErrorList(errs []string) string {
	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.ErrorMsg.Render("• " + e))
	}
	return b.String()
}

// RenderTabs renders the category tab bar. Index 0 is "All".
func RenderTabs(active int, counts map[domain.Category]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}

	tabs := []string{renderTab(fmt.Sprintf("All %d", total), active == 0, styles.Primary)}
	for i, c := range domain.Categories {
		label := fmt.Sprintf("%s %d", c, counts[c])
		tabs = append(tabs, renderTab(label, active == i+1, styles.CategoryColor(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderTab(label string, active bool, color lipgloss.Color) string {
	if active {
		return styles.TabActive.Background(color).Render(label)
	}
	return styles.Tab.Render(label)
}

// RenderTagLine renders one row of the tag list
func RenderTagLine(t domain.Tag, selected, showCategory bool) string {
	text := t.ID + "  " + t.Name
	if selected {
		return styles.TagSelected.Render(text)
	}

	var b strings.Builder
	if showCategory {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.CategoryColor(t.Category)).Render(padRight(string(t.Category), 11)))
	}
	b.WriteString(styles.TagID.Render(t.ID))
	b.WriteString("  ")
	b.WriteString(t.Name)
	if t.Difficulty != "" {
		b.WriteString("  ")
		b.WriteString(styles.DifficultyBadge.Render(string(t.Difficulty)))
	}
	return b.String()
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
