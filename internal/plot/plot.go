// Package plot renders precision-recall curves to image files.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jamesainslie/go-fmax/precrec"
)

// DefaultDPI is the resolution of raster output.
const DefaultDPI = 200

// ErrUnsupportedFormat is returned for output paths whose extension is not
// a known image format.
var ErrUnsupportedFormat = errors.New("plot: unsupported image format")

// Option configures Render.
type Option func(*config)

type config struct {
	width, height vg.Length
	dpi           int
	best          *precrec.Best
}

func defaultConfig() config {
	return config{
		width:  4 * vg.Inch,
		height: 4 * vg.Inch,
		dpi:    DefaultDPI,
	}
}

// WithSize sets the image dimensions (default: 4x4 inches).
func WithSize(w, h vg.Length) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.width, c.height = w, h
		}
	}
}

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option {
	return func(c *config) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithBest marks the Fmax point on the curve.
func WithBest(b precrec.Best) Option {
	return func(c *config) {
		if b.Index >= 0 {
			c.best = &b
		}
	}
}

// Render draws precision against recall and writes the image to path. The
// format follows the file extension. On error no file is left at path.
func Render(path, title string, curve precrec.Curve, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := CheckFormat(path); err != nil {
		return err
	}
	format := formatOf(path)

	p, err := build(title, curve, cfg)
	if err != nil {
		return err
	}

	wt, err := encoder(p, format, cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("plot: encode %s: %w", format, err)
	}
	return writeFile(path, buf.Bytes())
}

// CheckFormat reports ErrUnsupportedFormat unless the extension of path
// names an image format Render can write.
func CheckFormat(path string) error {
	if !supported(formatOf(path)) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return nil
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func supported(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		return true
	}
	return false
}

func build(title string, curve precrec.Curve, cfg config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Recall"
	p.Y.Label.Text = "Precision"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	ticks := make([]plot.Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		v := float64(i) / 10
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	xys := make(plotter.XYs, len(curve.Points))
	for i, pt := range curve.Points {
		xys[i].X = pt.Recall
		xys[i].Y = pt.Precision
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("plot: curve: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(plotter.NewGrid(), line)

	if cfg.best != nil {
		mark, err := plotter.NewScatter(plotter.XYs{{X: cfg.best.Recall, Y: cfg.best.Precision}})
		if err != nil {
			return nil, fmt.Errorf("plot: fmax marker: %w", err)
		}
		mark.GlyphStyle.Shape = draw.CircleGlyph{}
		mark.GlyphStyle.Radius = vg.Points(3)
		mark.GlyphStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
		p.Add(mark)
	}
	return p, nil
}

// encoder draws p onto a canvas for format. Raster canvases honour the
// configured DPI; vector formats go through the plot's own writer.
func encoder(p *plot.Plot, format string, cfg config) (io.WriterTo, error) {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(cfg.width, cfg.height), vgimg.UseDPI(cfg.dpi))
		p.Draw(draw.New(c))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	}
	wt, err := p.WriterTo(cfg.width, cfg.height, format)
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	return wt, nil
}

// writeFile writes data next to path and renames it into place.
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("plot: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("plot: write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("plot: write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}
