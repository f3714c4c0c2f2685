package cmd

// Options holds the shared command-line options for the mention CLI.
type Options struct {
	Account        string // Account to operate on (flag beats env beats config)
	Format         string // Output format (table, json); empty = config default
	TimeoutSeconds int    // Per-request timeout; 0 = config default
	Verbosity      int
	TUI            *bool // nil = auto-detect, true = force TUI, false = disable TUI
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAccount sets the account to operate on.
func WithAccount(account string) Option {
	return func(o *Options) {
		o.Account = account
	}
}

// WithFormat sets the output format (table, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
