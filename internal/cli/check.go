package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files whose whitespace needs normalizing",
		Long: `Check files for whitespace that the configured transforms would change.

Nothing is written. The exit status is 1 when any file would change,
which makes check suitable for CI gates and pre-commit hooks.

Examples:
  wsfmt check --remove-trailing-whitespace    # Gate on trailing spaces
  wsfmt check --diff docs/                    # Show what would change
  wsfmt check --format json                   # Machine-readable report`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, true)
		},
	}

	addEngineFlags(cmd, flags)
	addModeFlags(cmd, flags)
	addIOFlags(cmd, flags)
	addBatchFlags(cmd, flags)

	return cmd
}
