package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lenslab/internal/hasher"
)

// HashResult is the hash of one string.
type HashResult struct {
	Input string `json:"input"`
	Hash  int    `json:"hash"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <string>...",
		Short: "Hash strings into box indices",
		Long: `Print the lens-library hash of each argument, a value in [0,256).

Example:
  lenslab hash HASH rn cm`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]HashResult, len(args))
			for i, s := range args {
				results[i] = HashResult{Input: s, Hash: hasher.Hash(s)}
			}

			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(results)
			}
			lines := make([]string, len(results))
			for i, r := range results {
				lines[i] = fmt.Sprintf("%s\t%d", r.Input, r.Hash)
			}
			return f.Success(strings.Join(lines, "\n"))
		},
	}
}
