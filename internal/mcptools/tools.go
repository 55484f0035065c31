// Package mcptools exposes the calendar operations over the Model Context
// Protocol, so external agents can drive the same store the chat loop uses.
package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calbot-ai/calbot/internal/calendar"
)

// numberArg extracts an integer argument from MCP request arguments.
func numberArg(args map[string]interface{}, key string) (int, bool) {
	switch n := args[key].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// RegisterCalendarTools registers all calendar tools with the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, store *calendar.Store) {
	createTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the event"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date of the event in YYYY-MM-DD format"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Start time in 24-hour HH:MM format"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Duration of the event in minutes"),
		),
		mcp.WithString("description",
			mcp.Description("Optional description of the event"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		duration, ok := numberArg(args, "duration_minutes")
		if !ok {
			return mcp.NewToolResultError("duration_minutes is required and must be a number"), nil
		}

		created, fail := calendar.CreateEvent(store,
			stringArg(args, "title"),
			stringArg(args, "date"),
			stringArg(args, "time"),
			duration,
			stringArg(args, "description"),
		)
		if fail != nil {
			return mcp.NewToolResultError(fail.Message), nil
		}
		return mcp.NewToolResultText(calendar.RenderCreated(created)), nil
	})

	listTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List all calendar events on a specific date"),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to list events for in YYYY-MM-DD format"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		listing, fail := calendar.ListEvents(store, stringArg(args, "date"))
		if fail != nil {
			return mcp.NewToolResultError(fail.Message), nil
		}
		return mcp.NewToolResultText(calendar.RenderListing(listing)), nil
	})

	availabilityTool := mcp.NewTool("calendar_check_availability",
		mcp.WithDescription("Check whether a time slot on a date is free of conflicting events"),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to check in YYYY-MM-DD format"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Start time to check in 24-hour HH:MM format"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Duration of the slot in minutes"),
		),
	)

	s.AddTool(availabilityTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		duration, ok := numberArg(args, "duration_minutes")
		if !ok {
			return mcp.NewToolResultError("duration_minutes is required and must be a number"), nil
		}

		avail, fail := calendar.CheckAvailability(store,
			stringArg(args, "date"),
			stringArg(args, "time"),
			duration,
		)
		if fail != nil {
			return mcp.NewToolResultError(fail.Message), nil
		}
		return mcp.NewToolResultText(calendar.RenderAvailability(avail)), nil
	})

	updateTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update an existing event's date and/or start time. The event keeps its duration."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to update, e.g. EVT001"),
		),
		mcp.WithString("new_date",
			mcp.Description("New date in YYYY-MM-DD format"),
		),
		mcp.WithString("new_time",
			mcp.Description("New start time in 24-hour HH:MM format"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		eventID := stringArg(args, "event_id")
		if eventID == "" {
			return mcp.NewToolResultError("event_id is required"), nil
		}

		updated, fail := calendar.UpdateEvent(store,
			eventID,
			stringArg(args, "new_date"),
			stringArg(args, "new_time"),
		)
		if fail != nil {
			return mcp.NewToolResultError(fail.Message), nil
		}
		return mcp.NewToolResultText(calendar.RenderUpdated(updated)), nil
	})

	deleteTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event by its ID"),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to delete, e.g. EVT001"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		eventID := stringArg(args, "event_id")
		if eventID == "" {
			return mcp.NewToolResultError("event_id is required"), nil
		}

		deleted, fail := calendar.DeleteEvent(store, eventID)
		if fail != nil {
			return mcp.NewToolResultError(fail.Message), nil
		}
		return mcp.NewToolResultText(calendar.RenderDeleted(deleted)), nil
	})
}
