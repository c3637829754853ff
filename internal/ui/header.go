package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderHeader renders the status bar: title, event count and data state.
func (m Model) renderHeader() string {
	styles := m.styles()
	surface := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(surface) }
	sep := on(lipgloss.NewStyle()).Render("  ")

	parts := []string{on(styles.Logo).Render(m.title)}

	switch {
	case !m.snapshot.HasDomain && m.snapshot.LastError == nil:
		parts = append(parts, on(styles.WarningText.Bold(true)).Render(m.messages.T("card.loading")))

	case !m.snapshot.HasDomain:
		parts = append(parts,
			on(styles.DangerText).Render("● "+classifyLoadError(m.snapshot.LastError)),
			on(styles.WarningText.Bold(true)).Render("Retrying..."),
		)

	default:
		count := fmt.Sprintf("%d %s", len(m.snapshot.Domain.Events), m.messages.T("ui.events"))
		parts = append(parts, on(styles.Text).Render(count))
		if m.snapshot.IsOffline() {
			parts = append(parts, on(styles.DangerText).Render("● offline"))
		}
		if !m.snapshot.LastUpdated.IsZero() {
			parts = append(parts, on(styles.MutedText).Render(m.snapshot.LastUpdated.Format("15:04:05")))
		}
	}

	content := strings.Join(parts, sep)
	return styles.Header.Width(m.width).Render(ansi.Truncate(content, m.width-2, "…"))
}

// classifyLoadError shortens common fetch errors for the status bar.
func classifyLoadError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "server unreachable"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "timed out"
	case strings.Contains(msg, "no such host"):
		return "unknown host"
	case strings.Contains(msg, "no such file"):
		return "data file missing"
	default:
		return ansi.Truncate(strings.TrimSpace(err.Error()), 60, "...")
	}
}
