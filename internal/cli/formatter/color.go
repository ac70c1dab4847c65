package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TaskStatusPill returns a colored status indicator for a task.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskPending:
		return StyleBlue.Render("○ Pending")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.TaskEscalated:
		return StyleYellow.Render("▲ Escalated")
	case domain.TaskWarning:
		return StyleRed.Render("■ Warning")
	default:
		return StyleDim.Render(string(status))
	}
}

// InstanceStatusPill returns a colored status indicator for a workflow instance.
func InstanceStatusPill(status domain.InstanceStatus) string {
	switch status {
	case domain.InstanceActive:
		return StyleGreen.Render("● Active")
	case domain.InstanceCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.InstanceCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// LevelBadge renders a position level, brighter the higher it sits.
func LevelBadge(level domain.PositionLevel) string {
	switch level {
	case domain.LevelGeneralManager:
		return StyleRed.Render(level.Label())
	case domain.LevelBranchDeputy:
		return StylePurple.Render(level.Label())
	case domain.LevelDirectSupervisor:
		return StyleBlue.Render(level.Label())
	case domain.LevelStaff:
		return StyleFg.Render(level.Label())
	default:
		return StyleDim.Render(string(level))
	}
}

// UrgencyIndicator renders an urgency classification such as "● OVERDUE".
func UrgencyIndicator(urgency string) string {
	label := "● " + strings.ToUpper(strings.ReplaceAll(urgency, "_", " "))
	switch urgency {
	case "warning", "escalated":
		return StyleRed.Render(label)
	case "overdue":
		return StyleYellow.Render(label)
	case "due_soon":
		return StyleBlue.Render(label)
	case "upcoming":
		return StyleGreen.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// NotificationTypeBadge renders the notification kind.
func NotificationTypeBadge(typ domain.NotificationType) string {
	switch typ {
	case domain.NotificationWarning:
		return StyleRed.Render("WARNING")
	case domain.NotificationEscalation:
		return StyleYellow.Render("ESCALATION")
	default:
		return StyleBlue.Render(strings.ToUpper(string(typ)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
