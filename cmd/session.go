package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hal/mention-go/config"
	"github.com/hal/mention-go/internal/log"
	"github.com/hal/mention-go/internal/output"
	"github.com/hal/mention-go/mention"
)

// session bundles the loaded config, the API client, and the resolved
// output settings for one command invocation.
type session struct {
	cfg     *config.Config
	client  *mention.Client
	account string
	format  output.Format
}

// newSession loads configuration, resolves the token and account, and
// builds the API client.
func newSession(opts *Options) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	token := cfg.AccessToken()
	if token == "" {
		return nil, fmt.Errorf("no access token found. Set the %s environment variable", config.EnvAccessToken)
	}

	timeout := cfg.Timeout()
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}

	client, err := mention.NewClient(token, mention.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}

	formatName := opts.Format
	if formatName == "" {
		formatName = cfg.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	log.Debug("session ready", "timeout", timeout, "format", format)

	return &session{
		cfg:     cfg,
		client:  client,
		account: cfg.AccountID(opts.Account),
		format:  format,
	}, nil
}

// requireAccount returns the resolved account ID or an actionable error.
func (s *session) requireAccount() (string, error) {
	if s.account == "" {
		return "", fmt.Errorf("no account specified. Use --account, set %s, or set default_account in the config", config.EnvAccountID)
	}
	return s.account, nil
}

// render writes the payload to stdout, as a table unless JSON output
// was requested.
func (s *session) render(v mention.Value, table func(io.Writer, mention.Value) error) error {
	if s.format == output.FormatJSON {
		return output.JSON(os.Stdout, v)
	}
	return table(os.Stdout, v)
}
