package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
)

// FormatTemplateList renders the catalog inside a bordered box.
func FormatTemplateList(templates []*domain.WorkflowTemplate) string {
	headers := []string{"ID", "NAME", "CATEGORY", "NODES"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Dim(t.ID),
			Bold(t.Name),
			t.Category,
			strconv.Itoa(len(t.Nodes)),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template card with its node timers.
func FormatTemplateShow(t *domain.WorkflowTemplate) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(t.Name) + "  " + Dim(t.ID) + "\n")
	if t.Category != "" {
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("CATEGORY"), t.Category)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "  %s\n", t.Description)
	}
	b.WriteString("\n")

	headers := []string{"NODE", "TITLE", "LEVEL", "LIMIT", "REMIND", "ESCALATE", "WARN", "AFTER"}
	rows := make([][]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		rows = append(rows, []string{
			Dim(n.ID),
			n.Title,
			LevelBadge(n.ResponsibleLevel),
			minutes(n.TimeLimitMin),
			minutes(n.ReminderBeforeMin),
			minutes(n.EscalationAfterMin),
			minutes(n.WarningAfterMin),
			strings.Join(n.DependsOn, ","),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("", b.String())
}

// FormatInstanceList renders instances with a progress count.
func FormatInstanceList(instances []*domain.WorkflowInstance) string {
	headers := []string{"ID", "NAME", "TEMPLATE", "STATUS", "DONE", "STARTED"}
	rows := make([][]string, 0, len(instances))
	for _, inst := range instances {
		done := 0
		for _, t := range inst.Tasks {
			if t.Status == domain.TaskCompleted {
				done++
			}
		}
		rows = append(rows, []string{
			Dim(ShortID(inst.ID)),
			Bold(inst.Name),
			inst.TemplateID,
			InstanceStatusPill(inst.Status),
			fmt.Sprintf("%d/%d", done, len(inst.Tasks)),
			Stamp(inst.StartTime),
		})
	}
	return RenderBox("Instances", RenderTable(headers, rows))
}

// FormatInstanceShow renders an instance and its task timeline as of now.
func FormatInstanceShow(inst *domain.WorkflowInstance, now time.Time) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(inst.Name) + "  " + InstanceStatusPill(inst.Status) + "\n\n")
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("ID      "), inst.ID)
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("TEMPLATE"), inst.TemplateID)
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("STARTED "), Stamp(inst.StartTime))
	if inst.CreatedBy != "" {
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("BY      "), inst.CreatedBy)
	}
	b.WriteString("\n")
	b.WriteString(Header("Tasks"))
	b.WriteString("\n")

	headers := []string{"#", "NODE", "TITLE", "ASSIGNED", "STATUS", "ESCALATES", "WARNS"}
	rows := make([][]string, 0, len(inst.Tasks))
	for _, t := range inst.Tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.Seq),
			Dim(t.NodeID),
			t.Title,
			assignedLabel(t),
			TaskStatusPill(t.Status),
			timerCell(t.EscalationTime, t.EscalatedAt, t.Status, now),
			timerCell(t.WarningTime, t.WarnedAt, t.Status, now),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("", b.String())
}

// FormatAssignedQueue renders the work queue for one position level.
func FormatAssignedQueue(level domain.PositionLevel, queue []contract.AssignedTask, now time.Time) string {
	if len(queue) == 0 {
		return Dim("Nothing assigned to "+level.Label()+".") + "\n"
	}
	headers := []string{"URGENCY", "TASK", "INSTANCE", "STATUS", "ESCALATES"}
	rows := make([][]string, 0, len(queue))
	for _, a := range queue {
		rows = append(rows, []string{
			UrgencyIndicator(a.Urgency),
			a.Task.Title,
			Truncate(a.InstanceName, 32),
			TaskStatusPill(a.Task.Status),
			timerCell(a.Task.EscalationTime, a.Task.EscalatedAt, a.Task.Status, now),
		})
	}
	return RenderBox("Queue: "+level.Label(), RenderTable(headers, rows))
}

// FormatNotifications renders the inbox for one position level.
func FormatNotifications(level domain.PositionLevel, records []*domain.NotificationRecord) string {
	if len(records) == 0 {
		return Dim("No notifications for "+level.Label()+".") + "\n"
	}
	headers := []string{"", "ID", "TYPE", "SENT", "MESSAGE"}
	rows := make([][]string, 0, len(records))
	for _, n := range records {
		marker := StyleHeader.Render("•")
		if n.IsRead {
			marker = " "
		}
		rows = append(rows, []string{
			marker,
			Dim(n.ID),
			NotificationTypeBadge(n.Type),
			Stamp(n.SentTime),
			n.Message,
		})
	}
	return RenderBox("Notifications: "+level.Label(), RenderTable(headers, rows))
}

// FormatSweepResult summarizes one sweep pass.
func FormatSweepResult(res *contract.SweepResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sweep at %s: %d instances, %d tasks scanned\n",
		Stamp(res.At), res.InstancesScanned, res.TasksScanned)
	fmt.Fprintf(&b, "  %s %d   %s %d\n",
		StyleYellow.Render("escalated"), res.Escalated,
		StyleRed.Render("warned"), res.Warned)
	for _, f := range res.Failures {
		fmt.Fprintf(&b, "  %s %s/%s: %s\n", StyleRed.Render("failed"), ShortID(f.InstanceID), ShortID(f.TaskID), f.Err)
	}
	return b.String()
}

func minutes(m int) string {
	return strconv.Itoa(m) + "m"
}

func assignedLabel(t *domain.WorkflowTask) string {
	if t.AssignedTo == t.OriginalAssignee {
		return LevelBadge(t.AssignedTo)
	}
	return LevelBadge(t.AssignedTo) + Dim(" (from "+t.OriginalAssignee.Label()+")")
}

// timerCell shows when a timer fired, or how far away it is for open tasks.
func timerCell(due time.Time, firedAt *time.Time, status domain.TaskStatus, now time.Time) string {
	switch {
	case firedAt != nil:
		return StyleYellow.Render("fired " + Stamp(*firedAt))
	case status == domain.TaskCompleted:
		return Dim(Stamp(due))
	case due.Before(now):
		return StyleRed.Render(RelativeFrom(due, now))
	default:
		return RelativeFrom(due, now)
	}
}
