package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/calbot-ai/calbot/internal/agent"
	"github.com/calbot-ai/calbot/internal/model"
	"github.com/calbot-ai/calbot/internal/prompt"
	"github.com/calbot-ai/calbot/internal/stats"
	"github.com/calbot-ai/calbot/internal/tools"
)

var (
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive conversation with the calendar assistant.

Type requests in natural language ("schedule a call with Sam tomorrow at
3pm for an hour"). Type "exit" or "quit" to leave; session statistics are
printed on the way out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context())
		},
	}
}

func runChat(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger()

	if cfg.Model.APIKey == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("GROQ_API_KEY is not set."))
		fmt.Fprintln(os.Stderr, "Set it in the environment, a .env file, or ~/.calbot/config.toml.")
		return fmt.Errorf("missing API key")
	}

	store, closeStore := openStore(cfg, logger)
	defer closeStore()

	registry := tools.NewRegistry()
	registry.Initialize(store)

	groqCfg := model.DefaultGroqConfig(cfg.Model.APIKey)
	if cfg.Model.Name != "" {
		groqCfg.Model = cfg.Model.Name
	}
	if cfg.Model.BaseURL != "" {
		groqCfg.BaseURL = cfg.Model.BaseURL
	}
	if cfg.Model.TimeoutSeconds > 0 {
		groqCfg.Timeout = time.Duration(cfg.Model.TimeoutSeconds) * time.Second
	}
	if cfg.Model.MaxRetries > 0 {
		groqCfg.MaxRetries = cfg.Model.MaxRetries
	}
	chatModel := model.NewGroqClient(groqCfg)

	builder := prompt.NewBuilder(cfg.Calendar.Timezone)
	collector := stats.NewCollector()
	session := agent.NewSession(chatModel, registry, builder.BuildSystemPrompt(), agent.Options{
		MaxIterations: cfg.Agent.MaxIterations,
		MaxTokens:     cfg.Agent.MaxTokens,
		Logger:        logger,
		Stats:         collector,
	})

	fmt.Println(botStyle.Render("CalBot") + dimStyle.Render(" ("+chatModel.Name()+")"))
	fmt.Println(dimStyle.Render("Your calendar assistant. Type 'exit' to quit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("You: "))
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply := session.ProcessTurn(ctx, input)
		fmt.Println(botStyle.Render("CalBot: ") + reply)
		fmt.Println()
	}

	printStats(collector)
	return scanner.Err()
}

func printStats(collector *stats.Collector) {
	s := collector.Collect()
	fmt.Println()
	fmt.Println(dimStyle.Render(fmt.Sprintf(
		"Session: %d turns, %d model requests, %d tool calls, %d tokens, %d errors (up %s)",
		s.TurnCount, s.RequestCount, s.ToolCallCount, s.TokenCount, s.ErrorCount, s.Uptime,
	)))
}
