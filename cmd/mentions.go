package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hal/mention-go/internal/log"
	"github.com/hal/mention-go/internal/output"
	"github.com/hal/mention-go/mention"
)

// mentionsListFlags holds the flag values for mentions list.
type mentionsListFlags struct {
	sinceID         string
	limit           int
	beforeDate      string
	notBeforeDate   string
	source          string
	unread          bool
	favorite        bool
	folder          string
	tone            string
	countries       string
	includeChildren bool
	sort            string
	languages       string
	timezone        string
	query           string
	cursor          string
}

// curateFlags holds the flag values for mentions curate.
type curateFlags struct {
	favorite bool
	trashed  bool
	read     bool
	tags     []string
	folder   string
	tone     string
}

// NewCmdMentions creates the mentions command with subcommands.
func NewCmdMentions(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentions",
		Short: "Browse and curate the mentions an alert picked up",
	}

	cmd.AddCommand(NewCmdMentionsList(opts))
	cmd.AddCommand(NewCmdMentionsGet(opts))
	cmd.AddCommand(NewCmdMentionsChildren(opts))
	cmd.AddCommand(NewCmdMentionsCurate(opts))
	cmd.AddCommand(NewCmdMentionsRead(opts))

	return cmd
}

// NewCmdMentionsList creates the mentions list subcommand.
func NewCmdMentionsList(opts *Options) *cobra.Command {
	flags := &mentionsListFlags{}

	cmd := &cobra.Command{
		Use:   "list <alert-id>",
		Short: "List an alert's mentions, newest first",
		Long: `List an alert's mentions, newest first. The API forbids some
filter combinations: --since-id excludes the date filters and --cursor,
and --unread excludes --favorite, --search, and --tone.

Dates accept RFC 3339 or "2006-01-02 15:04" (interpreted as UTC unless
--timezone is given).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listOpts, err := buildMentionsOptions(cmd, flags)
			if err != nil {
				return err
			}

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			mentions, err := s.client.Mentions(cmd.Context(), account, args[0], listOpts)
			if err != nil {
				return err
			}
			return s.render(mentions, output.Mentions)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.sinceID, "since-id", "", "Only mentions newer than this mention ID")
	f.IntVar(&flags.limit, "limit", 0, "Maximum number of mentions (1-1000)")
	f.StringVar(&flags.beforeDate, "before-date", "", "Only mentions published before this date")
	f.StringVar(&flags.notBeforeDate, "not-before-date", "", "With --before-date, lower bound on the published date")
	f.StringVar(&flags.source, "source", "", "Filter by source (web, twitter, blogs, forums, news, facebook, images, videos)")
	f.BoolVar(&flags.unread, "unread", false, "Only unread mentions")
	f.BoolVar(&flags.favorite, "favorite", false, "Only favorited mentions")
	f.StringVar(&flags.folder, "folder", "", "Filter by folder (inbox, archive, spam, trash)")
	f.StringVar(&flags.tone, "tone", "", "Filter by tone (negative, neutral, positive)")
	f.StringVar(&flags.countries, "countries", "", "Comma-separated country codes")
	f.BoolVar(&flags.includeChildren, "include-children", false, "Include child mentions")
	f.StringVar(&flags.sort, "sort", "", "Sort order (published_at, author_influence.score, direct_reach, cumulative_reach, domain_reach)")
	f.StringVar(&flags.languages, "languages", "", "Comma-separated language codes")
	f.StringVar(&flags.timezone, "timezone", "", "Timezone for date filters (e.g. Europe/Paris)")
	f.StringVarP(&flags.query, "search", "q", "", "Full-text search within the mentions")
	f.StringVar(&flags.cursor, "cursor", "", "Pagination cursor from a previous response")

	return cmd
}

// NewCmdMentionsGet creates the mentions get subcommand.
func NewCmdMentionsGet(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <alert-id> <mention-id>",
		Short: "Show a single mention",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			m, err := s.client.Mention(cmd.Context(), account, args[0], args[1])
			if err != nil {
				return err
			}
			return s.render(m, output.Mentions)
		},
	}
}

// NewCmdMentionsChildren creates the mentions children subcommand.
func NewCmdMentionsChildren(opts *Options) *cobra.Command {
	var limit int
	var beforeDate string

	cmd := &cobra.Command{
		Use:   "children <alert-id> <mention-id>",
		Short: "List a mention's children (replies, retweets)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			childOpts := &mention.ChildrenOptions{Limit: limit}
			if beforeDate != "" {
				ts, err := parseDateFlag(beforeDate)
				if err != nil {
					return fmt.Errorf("invalid --before-date: %w", err)
				}
				childOpts.BeforeDate = ts
			}

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			children, err := s.client.MentionChildren(cmd.Context(), account, args[0], args[1], childOpts)
			if err != nil {
				return err
			}
			return s.render(children, output.Mentions)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of children (1-1000)")
	cmd.Flags().StringVar(&beforeDate, "before-date", "", "Only children published before this date")

	return cmd
}

// NewCmdMentionsCurate creates the mentions curate subcommand.
func NewCmdMentionsCurate(opts *Options) *cobra.Command {
	flags := &curateFlags{}

	cmd := &cobra.Command{
		Use:   "curate <alert-id> <mention-id>",
		Short: "Update a mention's workflow state",
		Long: `Update a mention's workflow state: favorite it, move it between
folders, correct its tone, tag it, or trash it. Only the flags you pass
are changed; everything else is left as is.

  mention mentions curate 42 1001 --favorite --tone positive
  mention mentions curate 42 1001 --read=false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := buildMentionPatch(cmd, flags)

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			account, err := s.requireAccount()
			if err != nil {
				return err
			}

			m, err := s.client.CurateMention(cmd.Context(), account, args[0], args[1], patch)
			if err != nil {
				return err
			}
			return s.render(m, output.Mentions)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.favorite, "favorite", false, "Favorite (or with =false, unfavorite) the mention")
	f.BoolVar(&flags.trashed, "trashed", false, "Trash (or with =false, restore) the mention")
	f.BoolVar(&flags.read, "read", false, "Mark the mention read (or with =false, unread)")
	f.StringSliceVar(&flags.tags, "tag", nil, "Replace the mention's tags")
	f.StringVar(&flags.folder, "folder", "", "Move the mention to a folder (inbox, archive, spam, trash)")
	f.StringVar(&flags.tone, "tone", "", "Correct the tone (negative, neutral, positive)")

	return cmd
}

// NewCmdMentionsRead creates the mentions read subcommand.
func NewCmdMentionsRead(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "read <alert-id>",
		Short: "Mark every mention of an alert as read",
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

			result, err := s.client.MarkAllMentionsRead(cmd.Context(), account, args[0])
			if err != nil {
				return err
			}
			log.Info("marked all mentions read", "alert", args[0])
			return s.render(result, output.Mentions)
		},
	}
}

// buildMentionsOptions assembles the listing filters from flags. Boolean
// filters are tri-state: only flags the user actually passed are sent.
func buildMentionsOptions(cmd *cobra.Command, flags *mentionsListFlags) (*mention.MentionsOptions, error) {
	listOpts := &mention.MentionsOptions{
		SinceID:   flags.sinceID,
		Limit:     flags.limit,
		Source:    flags.source,
		Folder:    flags.folder,
		Tone:      flags.tone,
		Countries: flags.countries,
		Sort:      flags.sort,
		Languages: flags.languages,
		Timezone:  flags.timezone,
		Q:         flags.query,
		Cursor:    flags.cursor,
	}

	if flags.beforeDate != "" {
		ts, err := parseDateFlag(flags.beforeDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --before-date: %w", err)
		}
		listOpts.BeforeDate = ts
	}
	if flags.notBeforeDate != "" {
		ts, err := parseDateFlag(flags.notBeforeDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --not-before-date: %w", err)
		}
		listOpts.NotBeforeDate = ts
	}

	if cmd.Flags().Changed("unread") {
		listOpts.Unread = mention.Bool(flags.unread)
	}
	if cmd.Flags().Changed("favorite") {
		listOpts.Favorite = mention.Bool(flags.favorite)
	}
	if cmd.Flags().Changed("include-children") {
		listOpts.IncludeChildren = mention.Bool(flags.includeChildren)
	}

	return listOpts, nil
}

// buildMentionPatch assembles the curate body, keeping unset flags out
// of it so the server leaves those fields alone.
func buildMentionPatch(cmd *cobra.Command, flags *curateFlags) mention.MentionPatch {
	patch := mention.MentionPatch{
		Tags:   flags.tags,
		Folder: flags.folder,
		Tone:   flags.tone,
	}
	if cmd.Flags().Changed("favorite") {
		patch.Favorite = mention.Bool(flags.favorite)
	}
	if cmd.Flags().Changed("trashed") {
		patch.Trashed = mention.Bool(flags.trashed)
	}
	if cmd.Flags().Changed("read") {
		patch.Read = mention.Bool(flags.read)
	}
	return patch
}

// dateFlagLayouts are the accepted date flag formats, tried in order.
var dateFlagLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDateFlag(s string) (time.Time, error) {
	for _, layout := range dateFlagLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognized date (want RFC 3339, 2006-01-02 15:04, or 2006-01-02)", s)
}
