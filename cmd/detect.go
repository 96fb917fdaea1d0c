package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/testshift/core/internal/ui"
	"github.com/testshift/core/pkg/converter/dialects/all"
	"github.com/testshift/core/pkg/domain"
)

var detectEvidence bool

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect which dialect a test file is written in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDetect(cmd.OutOrStdout(), args[0], detectEvidence)
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectEvidence, "evidence", false, "print the matched signals")
	rootCmd.AddCommand(detectCmd)
}

func RunDetect(w io.Writer, path string, evidence bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result := all.NewRegistry().Detector().Detect(string(content))
	if result.Dialect == domain.DialectUnknown {
		return fmt.Errorf("no dialect matched %s", path)
	}

	ui.DetectLine(w, result.Dialect.String(), result.Confidence)
	if evidence {
		for _, e := range result.Evidence {
			ui.EvidenceLine(w, e.Desc, e.Weight)
		}
	}
	return nil
}
