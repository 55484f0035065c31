package calendar

import (
	"fmt"
	"strings"
)

// Rendering is a separate presentation step: operations return structured
// payloads, and these functions turn them into the text shown to the user
// and fed back to the model as tool results.

// RenderCreated formats a create confirmation.
func RenderCreated(c *Created) string {
	var sb strings.Builder
	sb.WriteString("Event created successfully!\n")
	fmt.Fprintf(&sb, "- Event ID: %s\n", c.Event.ID)
	fmt.Fprintf(&sb, "- Title: %s\n", c.Event.Title)
	fmt.Fprintf(&sb, "- Date: %s\n", c.Event.Date)
	fmt.Fprintf(&sb, "- Time: %s to %s\n", Clock12(c.Event.StartTime), Clock12(c.Event.EndTime))
	fmt.Fprintf(&sb, "- Duration: %d minutes\n", c.DurationMinutes)
	fmt.Fprintf(&sb, "- Description: %s", c.Event.Description)
	return sb.String()
}

// RenderListing formats a day's events, or a friendly empty message.
func RenderListing(l *Listing) string {
	if len(l.Events) == 0 {
		return fmt.Sprintf("No events found on %s. The calendar is free that day.", l.Date)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Events on %s (%d found):", l.Date, len(l.Events))
	for _, ev := range l.Events {
		fmt.Fprintf(&sb, "\n- [%s] %s: %s to %s", ev.ID, ev.Title, Clock12(ev.StartTime), Clock12(ev.EndTime))
	}
	return sb.String()
}

// RenderAvailability formats an availability check. Busy is reported with the
// conflicting events, never as an error.
func RenderAvailability(a *Availability) string {
	if a.Available {
		return fmt.Sprintf("The slot %s to %s on %s is available.", Clock12(a.StartTime), Clock12(a.EndTime), a.Date)
	}

	var sb strings.Builder
	sb.WriteString("The requested time slot is busy. Conflicting event(s):")
	for _, ev := range a.Conflicts {
		fmt.Fprintf(&sb, "\n- [%s] %s: %s to %s", ev.ID, ev.Title, Clock12(ev.StartTime), Clock12(ev.EndTime))
	}
	return sb.String()
}

// RenderUpdated formats an update as an old/new diff.
func RenderUpdated(u *Updated) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Event %q (%s) updated!\n", u.Event.Title, u.Event.ID)
	fmt.Fprintf(&sb, "- Old: %s %s to %s\n", u.Before.Date, Clock12(u.Before.StartTime), Clock12(u.Before.EndTime))
	fmt.Fprintf(&sb, "- New: %s %s to %s", u.After.Date, Clock12(u.After.StartTime), Clock12(u.After.EndTime))
	return sb.String()
}

// RenderDeleted formats a delete confirmation.
func RenderDeleted(d *Deleted) string {
	var sb strings.Builder
	sb.WriteString("Event cancelled successfully!\n")
	fmt.Fprintf(&sb, "- Title: %s\n", d.Event.Title)
	fmt.Fprintf(&sb, "- Date: %s\n", d.Event.Date)
	fmt.Fprintf(&sb, "- Time: %s to %s\n", Clock12(d.Event.StartTime), Clock12(d.Event.EndTime))
	fmt.Fprintf(&sb, "- Event ID: %s", d.Event.ID)
	return sb.String()
}

// RenderFailure formats a recovered failure for the model and the user.
func RenderFailure(f *Failure) string {
	return "Error: " + f.Message
}
