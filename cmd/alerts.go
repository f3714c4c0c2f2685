package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal/mention-go/internal/output"
	"github.com/hal/mention-go/mention"
)

// alertFlags holds the flag values shared by alerts create and update.
type alertFlags struct {
	name             string
	queryType        string
	includedKeywords []string
	requiredKeywords []string
	excludedKeywords []string
	queryString      string
	languages        []string
	countries        []string
	sources          []string
	blockedSites     []string
	noiseDetection   bool
	reviewsPages     []string
}

// NewCmdAlerts creates the alerts command with subcommands.
func NewCmdAlerts(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List and manage alerts",
		Long: `List and manage the account's alerts. An alert is a saved search
the service monitors continuously; the mentions it picks up are browsed
with 'mention mentions'.

When run without a subcommand, lists all alerts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlertsList(cmd, opts)
		},
	}

	cmd.AddCommand(NewCmdAlertsList(opts))
	cmd.AddCommand(NewCmdAlertsGet(opts))
	cmd.AddCommand(NewCmdAlertsCreate(opts))
	cmd.AddCommand(NewCmdAlertsUpdate(opts))

	return cmd
}

// NewCmdAlertsList creates the alerts list subcommand.
func NewCmdAlertsList(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all alerts (same as bare 'mention alerts')",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlertsList(cmd, opts)
		},
	}
}

// NewCmdAlertsGet creates the alerts get subcommand.
func NewCmdAlertsGet(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <alert-id>",
		Short: "Show a single alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			alert, err := s.client.Alert(cmd.Context(), account, args[0])
			if err != nil {
				return err
			}
			return s.render(alert, output.Alerts)
		},
	}
}

// NewCmdAlertsCreate creates the alerts create subcommand.
func NewCmdAlertsCreate(opts *Options) *cobra.Command {
	flags := &alertFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new alert",
		Long: `Create a new alert. A basic alert lists keywords to track:

  mention alerts create --name "Brand watch" --keyword acme --keyword "acme corp"

An advanced alert uses a single boolean expression instead:

  mention alerts create --name "Launches" --query-type advanced \
    --query '(NASA AND Discovery) OR (Arianespace AND Ariane)'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildAlertRequest(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("noise-detection") {
				req.NoiseDetection = mention.Bool(flags.noiseDetection)
			}

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			alert, err := s.client.CreateAlert(cmd.Context(), account, req)
			if err != nil {
				return err
			}
			return s.render(alert, output.Alerts)
		},
	}

	addAlertFlags(cmd, flags)
	return cmd
}

// NewCmdAlertsUpdate creates the alerts update subcommand.
func NewCmdAlertsUpdate(opts *Options) *cobra.Command {
	flags := &alertFlags{}

	cmd := &cobra.Command{
		Use:   "update <alert-id>",
		Short: "Update an existing alert",
		Long: `Update an existing alert. The API replaces the alert definition,
so pass the complete desired state, not just the changed fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildAlertRequest(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("noise-detection") {
				req.NoiseDetection = mention.Bool(flags.noiseDetection)
			}

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			alert, err := s.client.UpdateAlert(cmd.Context(), account, args[0], req)
			if err != nil {
				return err
			}
			return s.render(alert, output.Alerts)
		},
	}

	addAlertFlags(cmd, flags)
	return cmd
}

func addAlertFlags(cmd *cobra.Command, flags *alertFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.name, "name", "", "Alert name (required)")
	f.StringVar(&flags.queryType, "query-type", mention.QueryTypeBasic, "Query type (basic, advanced)")
	f.StringArrayVar(&flags.includedKeywords, "keyword", nil, "Keyword to track (repeatable)")
	f.StringArrayVar(&flags.requiredKeywords, "required-keyword", nil, "Keyword every match must contain (repeatable)")
	f.StringArrayVar(&flags.excludedKeywords, "excluded-keyword", nil, "Keyword that disqualifies a match (repeatable)")
	f.StringVar(&flags.queryString, "query", "", "Boolean search expression (advanced queries)")
	f.StringSliceVar(&flags.languages, "language", []string{"en"}, "Language codes to monitor")
	f.StringSliceVar(&flags.countries, "country", nil, "Country codes to monitor")
	f.StringSliceVar(&flags.sources, "source", nil, "Sources to monitor (web, twitter, blogs, forums, news, facebook, images, videos)")
	f.StringSliceVar(&flags.blockedSites, "blocked-site", nil, "Sites to exclude from results")
	f.BoolVar(&flags.noiseDetection, "noise-detection", false, "Enable automatic noise detection")
	f.StringSliceVar(&flags.reviewsPages, "reviews-page", nil, "Review page URLs to monitor")

	_ = cmd.MarkFlagRequired("name")
}

// buildAlertRequest assembles the request body from flags, enforcing
// the basic/advanced split before anything reaches the API.
func buildAlertRequest(flags *alertFlags) (mention.AlertRequest, error) {
	query := mention.AlertQuery{Type: flags.queryType}

	switch flags.queryType {
	case mention.QueryTypeBasic:
		if len(flags.includedKeywords) == 0 {
			return mention.AlertRequest{}, fmt.Errorf("basic alerts need at least one --keyword")
		}
		if flags.queryString != "" {
			return mention.AlertRequest{}, fmt.Errorf("--query only applies to advanced alerts; use --keyword")
		}
		query.IncludedKeywords = flags.includedKeywords
		query.RequiredKeywords = flags.requiredKeywords
		query.ExcludedKeywords = flags.excludedKeywords
	case mention.QueryTypeAdvanced:
		if flags.queryString == "" {
			return mention.AlertRequest{}, fmt.Errorf("advanced alerts need a --query expression")
		}
		if len(flags.includedKeywords)+len(flags.requiredKeywords)+len(flags.excludedKeywords) > 0 {
			return mention.AlertRequest{}, fmt.Errorf("keyword flags only apply to basic alerts; use --query")
		}
		query.QueryString = flags.queryString
	default:
		return mention.AlertRequest{}, fmt.Errorf("invalid query type %q (must be basic or advanced)", flags.queryType)
	}

	return mention.AlertRequest{
		Name:         flags.name,
		Query:        query,
		Languages:    flags.languages,
		Countries:    flags.countries,
		Sources:      flags.sources,
		BlockedSites: flags.blockedSites,
		ReviewsPages: flags.reviewsPages,
	}, nil
}

func runAlertsList(cmd *cobra.Command, opts *Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	account, err := s.requireAccount()
	if err != nil {
		return err
	}

	alerts, err := s.client.Alerts(cmd.Context(), account)
	if err != nil {
		return err
	}
	return s.render(alerts, output.Alerts)
}
