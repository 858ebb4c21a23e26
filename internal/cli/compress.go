package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/shestakovda/tinify"
	"github.com/spf13/cobra"
)

type compressOptions struct {
	output     string
	suffix     string
	method     string
	width      int
	height     int
	convert    []string
	background string
	preserve   []string
}

func newCompressCommand(a *app) *cobra.Command {
	o := new(compressOptions)

	cmd := &cobra.Command{
		Use:   "compress INPUT...",
		Short: "Compress image files or URLs",
		Long: `Compress one or more images. An input starting with http:// or https://
is downloaded by the service, anything else is read from disk.

Results are written next to the input (or to the working directory for
URLs) with the suffix inserted before the extension, unless --output is
given for a single input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.output != "" && len(args) > 1 {
				return errors.New("--output accepts a single input")
			}

			if (o.width > 0 || o.height > 0) && o.method == "" {
				return errors.New("--width and --height need --resize-method")
			}

			return a.withClient(func(c tinify.Client) error {
				for _, in := range args {
					if err := o.compress(cmd.Context(), c, in, cmd.OutOrStdout()); err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Compressions this month: %d\n", tinify.CompressionCount())
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "Output file")
	f.StringVar(&o.suffix, "suffix", ".tiny", "Suffix inserted before the extension of generated names")
	f.StringVar(&o.method, "resize-method", "", "Resize method: scale, fit, cover or thumb")
	f.IntVar(&o.width, "width", 0, "Target width in pixels")
	f.IntVar(&o.height, "height", 0, "Target height in pixels")
	f.StringSliceVar(&o.convert, "convert", nil, "Convert to one of the media types, e.g. image/webp")
	f.StringVar(&o.background, "background", "", "Background for transparent areas: white, black or a hex color")
	f.StringSliceVar(&o.preserve, "preserve", nil, "Metadata to keep: copyright, creation, location")

	return cmd
}

func isURL(in string) bool {
	lower := strings.ToLower(in)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (o *compressOptions) compress(ctx context.Context, c tinify.Client, in string, w io.Writer) (err error) {
	var src *tinify.Source

	if isURL(in) {
		src, err = tinify.FromURL(ctx, c, in)
	} else {
		src, err = tinify.FromFile(ctx, c, in)
	}

	if err != nil {
		return err
	}

	glog.V(1).Infof("compressed %s to %s", in, src.URL())

	res, err := o.apply(src).Result(ctx)
	if err != nil {
		return err
	}

	out, err := o.outputPath(in, res.Extension())
	if err != nil {
		return err
	}

	if err = res.ToFile(out); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s -> %s (%d bytes)\n", in, out, res.Size())
	return nil
}

func (o *compressOptions) apply(src *tinify.Source) *tinify.Source {
	if o.method != "" {
		src = src.Resize(tinify.ResizeOptions{Method: o.method, Width: o.width, Height: o.height})
	}

	if len(o.convert) > 0 {
		src = src.Convert(tinify.ConvertOptions{Type: o.convert})
	}

	if o.background != "" {
		src = src.Transform(tinify.TransformOptions{Background: o.background})
	}

	if len(o.preserve) > 0 {
		src = src.Preserve(o.preserve...)
	}

	return src
}

// outputPath names the result after the input, switching the extension
// when the image was converted.
func (o *compressOptions) outputPath(in, ext string) (string, error) {
	if o.output != "" {
		return o.output, nil
	}

	dir, name := filepath.Dir(in), filepath.Base(in)

	if isURL(in) {
		u, err := url.Parse(in)
		if err != nil {
			return "", err
		}

		dir, name = ".", path.Base(u.Path)

		if name == "/" || name == "." {
			name = "image"
		}
	}

	old := filepath.Ext(name)
	name = strings.TrimSuffix(name, old)

	if ext == "" {
		ext = strings.TrimPrefix(old, ".")
	} else if ext == "jpeg" && strings.EqualFold(old, ".jpg") {
		ext = "jpg"
	}

	if ext != "" {
		ext = "." + ext
	}

	return filepath.Join(dir, name+o.suffix+ext), nil
}
