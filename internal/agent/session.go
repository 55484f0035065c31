// Package agent implements the conversation loop that drives the chat
// model and calendar tools.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/calbot-ai/calbot/internal/calendar"
	"github.com/calbot-ai/calbot/internal/logging"
	"github.com/calbot-ai/calbot/internal/model"
	"github.com/calbot-ai/calbot/internal/stats"
	"github.com/calbot-ai/calbot/internal/tools"
)

// Response strings for terminal loop states. The model never sees these;
// they go straight to the user.
const (
	fallbackReply   = "I processed your request."
	exhaustedReply  = "I'm sorry, I had trouble processing that request. Please try again."
	errorReplyShape = "I'm sorry, I encountered an error while processing your request. Please try again.\n\n(Error detail: %s)"
)

// Session holds one conversation: the full message history, the model
// backend, and the tool catalog. Not safe for concurrent use; each
// conversation gets its own Session.
type Session struct {
	chatModel model.ChatModel
	registry  *tools.Registry
	history   []model.Message

	maxIterations int
	maxTokens     int

	logger *slog.Logger
	stats  *stats.Collector
}

// Options configures a Session.
type Options struct {
	// MaxIterations caps model round-trips per user turn. Zero means 10.
	MaxIterations int

	// MaxTokens caps tokens per completion. Zero lets the client choose.
	MaxTokens int

	Logger *slog.Logger
	Stats  *stats.Collector
}

// NewSession creates a conversation session. The system prompt is placed
// at the head of history once and never repeated.
func NewSession(chatModel model.ChatModel, registry *tools.Registry, systemPrompt string, opts Options) *Session {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewCollector()
	}

	return &Session{
		chatModel:     chatModel,
		registry:      registry,
		history:       []model.Message{model.SystemMessage(systemPrompt)},
		maxIterations: opts.MaxIterations,
		maxTokens:     opts.MaxTokens,
		logger:        opts.Logger,
		stats:         opts.Stats,
	}
}

// History returns a copy of the conversation history.
func (s *Session) History() []model.Message {
	out := make([]model.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Stats returns the session's stats collector.
func (s *Session) Stats() *stats.Collector {
	return s.stats
}

// ProcessTurn runs one user turn through the tool-calling loop and returns
// the assistant's final text. It never panics and never returns an error;
// failures surface as apologetic replies while history stays consistent.
func (s *Session) ProcessTurn(ctx context.Context, userText string) string {
	s.history = append(s.history, model.UserMessage(userText))
	defer s.stats.RecordTurn()

	catalog := s.registry.ModelTools()

	for turn := 0; turn < s.maxIterations; turn++ {
		reqStart := time.Now()
		resp, err := s.chatModel.Complete(ctx, &model.Request{
			Messages:  s.history,
			Tools:     catalog,
			MaxTokens: s.maxTokens,
		})
		if err != nil {
			s.stats.RecordError()
			s.logger.Error("model request failed",
				logging.Turn(turn),
				logging.Err(err))
			return fmt.Sprintf(errorReplyShape, err.Error())
		}
		s.stats.RecordRequest(resp.TokensUsed, time.Since(reqStart))

		if len(resp.ToolCalls) == 0 {
			reply := resp.Text
			if reply == "" {
				reply = fallbackReply
			}
			s.history = append(s.history, model.AssistantMessage(reply))
			return reply
		}

		// The assistant message, ids included, is kept verbatim so the
		// call/result pairing survives in history.
		calls := ensureCallIDs(resp.ToolCalls)
		s.history = append(s.history, model.Message{
			Role:      model.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: calls,
		})

		for _, call := range calls {
			s.history = append(s.history, model.ToolResultMessage(call.ID, s.executeCall(ctx, turn, call)))
		}
	}

	s.logger.Warn("iteration cap reached", logging.Turn(s.maxIterations))
	return exhaustedReply
}

// executeCall runs one tool invocation and renders its outcome as the text
// fed back to the model. Unknown tools and failed operations produce error
// text rather than aborting the turn; the model decides how to recover.
func (s *Session) executeCall(ctx context.Context, turn int, call model.ToolCall) string {
	s.stats.RecordToolCall()

	result, err := s.registry.Execute(ctx, call.Name, call.Input)
	if err != nil {
		s.stats.RecordError()
		s.logger.Warn("tool dispatch failed",
			logging.Turn(turn),
			logging.Tool(call.Name),
			logging.CallID(call.ID),
			logging.Err(err))
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}

	status := logging.StatusSuccess
	if !result.Success {
		status = logging.StatusError
	}
	s.logger.Info("tool executed",
		logging.Turn(turn),
		logging.Tool(call.Name),
		logging.CallID(call.ID),
		logging.Status(status),
		slog.Int64("duration_ms", result.DurationMs))

	return renderResult(result.Data, result.Error)
}

// renderResult turns a structured tool result into the text the model sees.
func renderResult(data any, errText string) string {
	if errText != "" {
		return calendar.RenderFailure(&calendar.Failure{Message: errText})
	}

	switch payload := data.(type) {
	case *calendar.Created:
		return calendar.RenderCreated(payload)
	case *calendar.Listing:
		return calendar.RenderListing(payload)
	case *calendar.Availability:
		return calendar.RenderAvailability(payload)
	case *calendar.Updated:
		return calendar.RenderUpdated(payload)
	case *calendar.Deleted:
		return calendar.RenderDeleted(payload)
	case string:
		return payload
	default:
		return fmt.Sprintf("%v", payload)
	}
}

// ensureCallIDs fills in ids for tool calls the model sent without one, so
// results can always be paired back to their invocation.
func ensureCallIDs(calls []model.ToolCall) []model.ToolCall {
	out := make([]model.ToolCall, len(calls))
	copy(out, calls)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = "call_" + uuid.NewString()
		}
	}
	return out
}
