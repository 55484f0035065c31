package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calbot-ai/calbot/internal/calendar"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events [date]",
		Short: "List events on a date without starting a chat",
		Long: `List calendar events for the given date (YYYY-MM-DD).
Defaults to today in the configured timezone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger()

			store, closeStore := openStore(cfg, logger)
			defer closeStore()

			date := todayIn(cfg.Calendar.Timezone)
			if len(args) == 1 {
				date = args[0]
			}

			listing, fail := calendar.ListEvents(store, date)
			if fail != nil {
				return fmt.Errorf("%s", fail.Message)
			}

			fmt.Println(calendar.RenderListing(listing))
			return nil
		},
	}
}

// todayIn resolves today's date in the given IANA zone, falling back to
// the local clock when the zone is unknown.
func todayIn(timezone string) string {
	now := time.Now()
	if loc, err := time.LoadLocation(timezone); err == nil {
		now = now.In(loc)
	}
	return now.Format(calendar.DateLayout)
}
