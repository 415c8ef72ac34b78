package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: service names, namespaces, images.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for converged rollouts.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for skipped services and rollbacks.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for timed-out rollouts and failed rollbacks.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (service names, namespaces, images).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// OutcomeStyle returns the lipgloss style for a rollout outcome string.
// Unknown outcomes return an unstyled default.
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "converged":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "skipped":
		return lipgloss.NewStyle().Faint(true)
	case "rolled-back":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case "failed", "timed-out", "rollback-failed":
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark formats a success message with a leading checkmark.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return fmt.Sprintf("%s %s", check, StyleSummary.Render(msg))
}

// FormatCross formats a failure message with a leading cross.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(ColorRed).Render("✘")
	return fmt.Sprintf("%s %s", cross, StyleSummary.Render(msg))
}
