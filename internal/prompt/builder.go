// Package prompt builds the system prompt for CalBot.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

// Builder constructs the system prompt. Today's date is resolved in the
// configured zone at build time so relative dates in conversation ground
// against the user's local day, not the server's.
type Builder struct {
	Timezone string

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// NewBuilder creates a prompt builder for the given IANA timezone.
func NewBuilder(timezone string) *Builder {
	return &Builder{Timezone: timezone}
}

// BuildSystemPrompt returns the full system prompt.
func (b *Builder) BuildSystemPrompt() string {
	now := b.now()

	todayLong := now.Format("Monday, January 2, 2006")
	todayISO := now.Format("2006-01-02")

	var sb strings.Builder
	sb.WriteString("You are a helpful and professional calendar assistant named CalBot.\n")
	sb.WriteString("You help users manage their calendar through natural conversation.\n\n")
	sb.WriteString("RULES:\n")
	sb.WriteString("- Always confirm details before creating events.\n")
	sb.WriteString("- Always ask for confirmation before deleting events.\n")
	sb.WriteString("- When user refers to a meeting by name or time without providing an event ID, first call list_events to find the correct event ID before updating or deleting.\n")
	sb.WriteString("- Understand relative dates naturally: today, tomorrow, next Monday, this Friday.\n")
	sb.WriteString(fmt.Sprintf("- Today's date is %s (%s).\n", todayLong, todayISO))
	sb.WriteString("- Use YYYY-MM-DD format for all dates when calling tools.\n")
	sb.WriteString("- Use HH:MM 24-hour format for all times when calling tools.\n")
	sb.WriteString("- Be concise, friendly, and professional.\n")
	sb.WriteString("- If user does not specify duration, assume 30 minutes.\n")
	sb.WriteString("- When listing or checking events, always resolve relative dates (today, tomorrow, etc.) to the actual YYYY-MM-DD date.")

	return sb.String()
}

// Today returns today's date in the configured zone as YYYY-MM-DD.
func (b *Builder) Today() string {
	return b.now().Format("2006-01-02")
}

func (b *Builder) now() time.Time {
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}

	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return now
	}
	return now.In(loc)
}
