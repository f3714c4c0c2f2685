package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hal/mention-go/internal/output"
)

// NewCmdAppData creates the appdata command.
func NewCmdAppData(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "appdata",
		Short: "Show application data for the authenticated token",
		Long: `Fetch the application-level data the API exposes for the current
token: available languages, sources, permissions, and similar metadata.
The payload is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(opts)
			if err != nil {
				return err
			}

			data, err := s.client.AppData(cmd.Context())
			if err != nil {
				return err
			}
			return output.JSON(os.Stdout, data)
		},
	}
}
