/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/flashkit/pkg/inspect"
)

// roundtripCmd represents the roundtrip command
var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <in> <out>",
	Short: "Decode a container and encode it again",
	Long: `Decode a container and write it back out. Records of unknown type are
dropped, so the output only differs from the input when such records exist.

Example:
  flashkit roundtrip intro.swf intro-copy.swf`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := fromContext(cmd.Context())
		kind, _ := cmd.Flags().GetString("kind")
		return runRoundTrip(cmd.OutOrStdout(), a.logger, args[0], args[1], kind)
	},
}

func runRoundTrip(w io.Writer, logger *slog.Logger, in, out, kindName string) error {
	kind, data, err := readContainer(in, kindName)
	if err != nil {
		return err
	}

	encoded, skipped, err := inspect.RoundTrip(kind, data)
	if err != nil {
		return errors.Wrapf(err, "failed to re-encode %s", in)
	}
	for _, s := range skipped {
		logger.Warn("dropped unknown record", "file", in, "type", s.Type, "offset", s.Offset, "length", s.Length)
	}

	if err := os.WriteFile(out, encoded, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}

	if bytes.Equal(data, encoded) {
		printf(w, "%s: %d bytes, identical\n", out, len(encoded))
	} else {
		printf(w, "%s: %d bytes (input %d), %d records dropped\n", out, len(encoded), len(data), len(skipped))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
	roundtripCmd.Flags().StringP("kind", "k", "", "Container kind (movie or video), detected when empty")
}
