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
	"github.com/ssargent/flashkit/pkg/config"
	"github.com/ssargent/flashkit/pkg/datatype"
	"github.com/ssargent/flashkit/pkg/movie"
	"github.com/ssargent/flashkit/pkg/raster"
)

// twips per pixel
const twips = 20

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image <picture> <out>",
	Short: "Build a one-frame movie showing a picture",
	Long: `Build a movie whose single frame defines the given picture. JPEG files are
embedded unchanged; other formats are re-encoded as JPEG and keep their
transparency as a separate alpha channel.

Examples:
  flashkit image photo.jpg photo.swf
  flashkit image --id=7 --quality=70 logo.png logo.swf`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := fromContext(cmd.Context())
		opts := imageOptions{
			id:       mustInt(cmd, "id"),
			quality:  a.config.Image.JPEGQuality,
			compress: a.config.Movie.Compress,
		}
		if cmd.Flags().Changed("quality") {
			opts.quality = mustInt(cmd, "quality")
		}
		if cmd.Flags().Changed("compress") {
			opts.compress, _ = cmd.Flags().GetBool("compress")
		}
		return runImage(cmd.OutOrStdout(), a.logger, a.config, args[0], args[1], opts)
	},
}

type imageOptions struct {
	id       int
	quality  int
	compress bool
}

func mustInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// buildImageMovie wraps info in a movie sized to the picture
func buildImageMovie(cfg *config.Config, info *raster.ImageInfo, opts imageOptions) (*movie.Movie, error) {
	tag, err := movie.DefineImage(opts.id, info)
	if err != nil {
		return nil, err
	}

	m := movie.New()
	m.Compressed = opts.compress
	if err := m.SetVersion(cfg.Movie.Version); err != nil {
		return nil, err
	}
	if err := m.SetRate(cfg.Movie.FrameRate); err != nil {
		return nil, err
	}
	if info.Geometry().Known() {
		m.FrameSize = datatype.NewBounds(0, 0, info.Width()*twips, info.Height()*twips)
	}
	m.FrameCount = 1
	m.Add(
		movie.NewSetBackgroundColor(datatype.RGB(0xFF, 0xFF, 0xFF)),
		tag,
		&movie.ShowFrame{},
		&movie.End{},
	)
	return m, nil
}

func runImage(w io.Writer, logger *slog.Logger, cfg *config.Config, picture, out string, opts imageOptions) error {
	info, err := raster.Open(picture, opts.quality)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", picture)
	}
	if !info.Geometry().Known() {
		logger.Warn("image geometry not found, keeping the default stage size", "file", picture)
	}

	m, err := buildImageMovie(cfg, info, opts)
	if err != nil {
		return err
	}
	data, err := m.Encode()
	if err != nil {
		return errors.Wrap(err, "failed to encode movie")
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}

	logger.Debug("built image movie", "file", out, "alpha", info.HasAlpha(), "compressed", m.Compressed)
	printf(w, "%s: %dx%d image, %d bytes\n", out, info.Width(), info.Height(), len(data))
	return nil
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().Int("id", 1, "Character identifier of the image (1-65535)")
	imageCmd.Flags().IntP("quality", "q", raster.DefaultQuality, "JPEG quality for re-encoded pictures")
	imageCmd.Flags().Bool("compress", false, "Write a zlib compressed (CWS) movie")
}
