// Package tools provides a unified tool registry with schemas and executors.
package tools

import (
	"context"

	"github.com/calbot-ai/calbot/internal/calendar"
	"github.com/calbot-ai/calbot/internal/model"
	"github.com/calbot-ai/calbot/internal/tools/executor"
	"github.com/calbot-ai/calbot/internal/tools/schemas"
)

// Registry combines schemas and executors for complete tool management.
type Registry struct {
	schemas   *schemas.Registry
	executors *executor.Registry
}

// NewRegistry creates a new unified tool registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   schemas.NewRegistry(),
		executors: executor.NewRegistry(),
	}
}

// Schemas returns the schema registry.
func (r *Registry) Schemas() *schemas.Registry {
	return r.schemas
}

// Executors returns the executor registry.
func (r *Registry) Executors() *executor.Registry {
	return r.executors
}

// Register registers both a schema and executor for a tool.
func (r *Registry) Register(tool executor.Tool, schema *schemas.Schema) {
	r.executors.Register(tool)
	r.schemas.Register(schema)
}

// ModelTools returns the catalog in the form the chat model consumes,
// in registration order.
func (r *Registry) ModelTools() []model.Tool {
	all := r.schemas.All()
	result := make([]model.Tool, 0, len(all))
	for _, schema := range all {
		result = append(result, model.Tool{
			Name:        schema.Name,
			Description: schema.Description,
			Parameters:  schema.Parameters,
		})
	}
	return result
}

// Execute runs a tool by name.
func (r *Registry) Execute(ctx context.Context, name string, input map[string]any) (*executor.Result, error) {
	return r.executors.Execute(ctx, name, input)
}

// Initialize registers the calendar tools with their schemas and executors.
func (r *Registry) Initialize(store *calendar.Store) {
	r.Register(executor.NewCreateEventTool(store), schemas.NewSchema("create_event", "Create a new calendar event").
		AddParam("title", "string", "Title of the event", true).
		AddParam("date", "string", "Date of the event in YYYY-MM-DD format", true).
		AddParam("time", "string", "Start time in 24-hour HH:MM format", true).
		AddParam("duration_minutes", "integer", "Duration of the event in minutes", true).
		AddParam("description", "string", "Optional description of the event", false).
		Build())

	r.Register(executor.NewListEventsTool(store), schemas.NewSchema("list_events", "List all events on a specific date").
		AddParam("date", "string", "Date to list events for in YYYY-MM-DD format", true).
		Build())

	r.Register(executor.NewCheckAvailabilityTool(store), schemas.NewSchema("check_availability", "Check if a time slot is available on a given date").
		AddParam("date", "string", "Date to check in YYYY-MM-DD format", true).
		AddParam("time", "string", "Start time to check in 24-hour HH:MM format", true).
		AddParam("duration_minutes", "integer", "Duration of the slot in minutes", true).
		Build())

	r.Register(executor.NewUpdateEventTool(store), schemas.NewSchema("update_event", "Update an existing event's date and/or start time. The event keeps its duration.").
		AddParam("event_id", "string", "ID of the event to update, e.g. EVT001", true).
		AddParam("new_date", "string", "New date in YYYY-MM-DD format (optional)", false).
		AddParam("new_time", "string", "New start time in 24-hour HH:MM format (optional)", false).
		Build())

	r.Register(executor.NewDeleteEventTool(store), schemas.NewSchema("delete_event", "Delete a calendar event by its ID").
		AddParam("event_id", "string", "ID of the event to delete, e.g. EVT001", true).
		Build())
}
