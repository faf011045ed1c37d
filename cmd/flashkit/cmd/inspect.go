/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/flashkit/pkg/inspect"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a container and list its records",
	Long: `Decode a movie or video container and print its header and records.

The container kind is detected from the signature unless --kind is given.

Examples:
  flashkit inspect intro.swf
  flashkit inspect --format=json clip.flv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := fromContext(cmd.Context())
		kind, _ := cmd.Flags().GetString("kind")
		format, _ := cmd.Flags().GetString("format")
		return runInspect(cmd.OutOrStdout(), a.logger, args[0], kind, format)
	},
}

// readContainer reads path and resolves its kind
func readContainer(path, kindName string) (inspect.Kind, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var kind inspect.Kind
	if kindName != "" {
		kind, err = inspect.ParseKind(kindName)
	} else {
		kind, err = inspect.Detect(data)
	}
	if err != nil {
		return "", nil, errors.Wrap(err, path)
	}
	return kind, data, nil
}

func runInspect(w io.Writer, logger *slog.Logger, path, kindName, format string) error {
	kind, data, err := readContainer(path, kindName)
	if err != nil {
		return err
	}

	report, err := inspect.Inspect(kind, data)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	logSkipped(logger, path, report)
	logger.Debug("decoded container", "file", path, "kind", kind, "records", len(report.Records))

	return outputReport(w, report, format)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("kind", "k", "", "Container kind (movie or video), detected when empty")
	inspectCmd.Flags().StringP("format", "f", "table", "Output format (table or json)")
}
