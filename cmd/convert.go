package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/testshift/core/internal/ui"
	"github.com/testshift/core/pkg/converter/dialects/all"
	"github.com/testshift/core/pkg/domain"
	"github.com/testshift/core/pkg/report"
)

var (
	convertFrom string
	convertTo   string
	convertOut  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert one test file to another dialect ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConvert(cmd.OutOrStdout(), args[0], convertFrom, convertTo, convertOut)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "source dialect (detected when omitted)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target dialect")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file (stdout when omitted)")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

func RunConvert(w io.Writer, path, from, to, out string) error {
	target, err := domain.ParseDialect(to)
	if err != nil {
		return err
	}

	var content []byte
	if path == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(content)

	registry := all.NewRegistry()

	var source domain.Dialect
	if from == "" {
		detected := registry.Detector().Detect(text)
		if detected.Dialect == domain.DialectUnknown {
			return fmt.Errorf("could not detect the dialect of %s; pass --from", path)
		}
		source = detected.Dialect
	} else {
		source, err = domain.ParseDialect(from)
		if err != nil {
			return err
		}
	}

	conv, err := registry.New(source, target)
	if err != nil {
		return err
	}

	converted := conv.Convert(text)

	if out == "" {
		_, err := io.WriteString(w, converted)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(converted), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	rep := report.Parse(out, converted)
	ui.ConvertedLine(w, out, len(rep.Todos), len(rep.Warnings))
	return nil
}
