package cmd

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hal/mention-go/internal/log"
	"github.com/hal/mention-go/internal/output"
	"github.com/hal/mention-go/internal/tui"
	"github.com/hal/mention-go/mention"
)

// overviewWorkers bounds the per-alert mention fetches running at once.
const overviewWorkers = 4

// alertSummary is one alert's slice of the overview: its identity plus
// the latest mentions fetched for it.
type alertSummary struct {
	id       string
	name     string
	mentions mention.Value
	err      error
}

// overviewRuntime bundles TUI state that's threaded through the
// overview command.
type overviewRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// start launches the progress display goroutine if TUI mode is enabled.
func (rt *overviewRuntime) start() {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events)
	}()
}

// close closes the event channel and waits for the display to finish.
func (rt *overviewRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	<-rt.tuiDone
	rt.events = nil
}

// NewCmdOverview creates the overview command.
func NewCmdOverview(opts *Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show every alert with its latest mentions",
		Long: `Fetch all of the account's alerts, then the latest mentions of each
alert in parallel, and print one section per alert.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOverview(cmd, opts, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Mentions to fetch per alert")
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable progress display (default: auto-detect)")

	return cmd
}

func runOverview(cmd *cobra.Command, opts *Options, limit int) error {
	ctx := cmd.Context()

	rt := &overviewRuntime{useTUI: shouldUseTUI(opts)}
	// Suppress logs during the progress display to avoid interleaving.
	if rt.useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	}
	rt.start()
	defer rt.close()

	s, err := newSession(opts)
	if err != nil {
		return err
	}
	account, err := s.requireAccount()
	if err != nil {
		return err
	}

	tui.SendTaskEvent(rt.events, tui.TaskAlerts, tui.StatusRunning)
	alertsPayload, err := s.client.Alerts(ctx, account)
	if err != nil {
		tui.SendTaskEvent(rt.events, tui.TaskAlerts, tui.StatusError, tui.WithError(err))
		return err
	}

	summaries := collectAlertSummaries(alertsPayload)
	tui.SendTaskEvent(rt.events, tui.TaskAlerts, tui.StatusComplete, tui.WithCount(len(summaries)))

	if len(summaries) == 0 {
		rt.close()
		fmt.Println("No alerts configured for this account.")
		return nil
	}

	tui.SendTaskEvent(rt.events, tui.TaskMentions, tui.StatusRunning)

	var completed atomic.Int64
	listOpts := &mention.MentionsOptions{Limit: limit}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewWorkers)
	for i := range summaries {
		g.Go(func() error {
			sum := &summaries[i]
			sum.mentions, sum.err = s.client.Mentions(gctx, account, sum.id, listOpts)
			if sum.err != nil {
				log.Warn("mentions fetch failed", "alert", sum.id, "error", sum.err)
			}

			done := completed.Add(1)
			tui.SendTaskEvent(rt.events, tui.TaskMentions, tui.StatusRunning,
				tui.WithProgress(float64(done)/float64(len(summaries))),
				tui.WithMessage(fmt.Sprintf("%d/%d", done, len(summaries))))
			return nil
		})
	}
	_ = g.Wait()

	tui.SendTaskEvent(rt.events, tui.TaskMentions, tui.StatusComplete)
	tui.SendEvent(rt.events, tui.DoneEvent{})
	rt.close()

	return renderOverview(os.Stdout, s, summaries)
}

// collectAlertSummaries pulls the alert identities out of the listing
// payload. Items without an id are skipped.
func collectAlertSummaries(payload mention.Value) []alertSummary {
	list, ok := payload.Get("alerts")
	if !ok {
		return nil
	}
	items, err := list.Array()
	if err != nil {
		return nil
	}

	summaries := make([]alertSummary, 0, len(items))
	for _, item := range items {
		id := scalarText(item, "id")
		if id == "" {
			continue
		}
		summaries = append(summaries, alertSummary{
			id:   id,
			name: scalarText(item, "name"),
		})
	}
	return summaries
}

// scalarText reads a string or numeric member as text.
func scalarText(v mention.Value, key string) string {
	member, ok := v.Get(key)
	if !ok {
		return ""
	}
	if s, ok := member.Text(); ok {
		return s
	}
	if f, ok := member.Number(); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return ""
}

func renderOverview(w io.Writer, s *session, summaries []alertSummary) error {
	heading := color.New(color.Bold)

	for i, sum := range summaries {
		if i > 0 {
			fmt.Fprintln(w)
		}

		name := sum.name
		if name == "" {
			name = "(unnamed alert)"
		}
		heading.Fprintf(w, "%s", name)
		fmt.Fprintf(w, "  [%s]\n", sum.id)

		if sum.err != nil {
			fmt.Fprintf(w, "  error: %v\n", sum.err)
			continue
		}
		if err := s.render(sum.mentions, output.Mentions); err != nil {
			return err
		}
	}
	return nil
}

// shouldUseTUI resolves the tri-state TUI option against the environment.
func shouldUseTUI(opts *Options) bool {
	if opts.TUI != nil {
		return *opts.TUI
	}
	return tui.ShouldUseTUI()
}
