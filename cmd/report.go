package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/testshift/core/pkg/report"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Summarize the annotations left in converted files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunReport(cmd.OutOrStdout(), args[0], reportJSON)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit JSON instead of Markdown")
	rootCmd.AddCommand(reportCmd)
}

func RunReport(w io.Writer, dir string, asJSON bool) error {
	var files []report.FileReport

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		default:
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, report.Parse(rel, string(content)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	summary := report.Build(files)
	if asJSON {
		return summary.WriteJSON(w)
	}
	_, err = io.WriteString(w, summary.Markdown())
	return err
}
