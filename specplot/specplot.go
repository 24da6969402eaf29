/*
 * specplot.go, part of vibspec
 *
 * Copyright 2024 The vibspec Authors
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package specplot draws broadened spectra with gonum/plot.
package specplot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/vibspec"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//DefaultDPI is the resolution of raster images (png, jpg, tiff).
const DefaultDPI = 300

//Options controls the look of a spectrum plot.
type Options struct {
	Title   string
	XLabel  string
	YLabel  string
	InvertX bool //draw the frequency axis from high to low wavenumbers
	Legend  bool //label each line with the name of its spectrum
	XMin    float64
	XMax    float64 //if XMax<=XMin, the range is taken from the data
	Width   vg.Length
	Height  vg.Length
	DPI     int //raster formats only, <=0 means DefaultDPI
}

//DefaultOptions returns a 10x6 inch plot with wavenumbers in the X axis.
func DefaultOptions() Options {
	return Options{
		XLabel: "Wavenumber (cm-1)",
		YLabel: "Intensity (a.u.)",
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    DefaultDPI,
	}
}

func basicSpectrumPlot(O Options) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = O.Title
	p.X.Label.Text = O.XLabel
	p.Y.Label.Text = O.YLabel
	if O.XMax > O.XMin {
		p.X.Min = O.XMin
		p.X.Max = O.XMax
	}
	if O.InvertX {
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	p.Add(plotter.NewGrid())
	if O.Legend {
		p.Legend.Top = true
	}
	return p
}

//New builds the plot for the given spectra, one line each, without saving it.
func New(O Options, spectra ...*vibspec.Spectrum) (*plot.Plot, error) {
	if len(spectra) == 0 {
		return nil, vibspec.NewError(vibspec.ErrRequest, "", "no spectra to plot").Caller("specplot.New")
	}
	p := basicSpectrumPlot(O)
	names := legendNames(spectra)
	for key, s := range spectra {
		if s == nil {
			return nil, vibspec.NewError(vibspec.ErrRequest, "", "nil spectrum %d", key).Caller("specplot.New")
		}
		if len(s.Freqs) != len(s.Ints) {
			return nil, vibspec.NewError(vibspec.ErrRequest, s.Name, "%d grid points but %d intensities", len(s.Freqs), len(s.Ints)).Caller("specplot.New")
		}
		if s.Len() == 0 {
			continue //nothing to draw, but the rest of the plot is still fine
		}
		pts := make(plotter.XYs, s.Len())
		for i, v := range s.Ints {
			pts[i].X = s.Freqs[i]
			pts[i].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, vibspec.NewError(vibspec.ErrRequest, s.Name, "%s", err.Error()).Caller("specplot.New")
		}
		r, g, b := colors(key, len(spectra))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		if O.Legend {
			p.Legend.Add(names[key], l)
		}
	}
	return p, nil
}

//Save draws the spectra and writes the plot to filename. The format is
//taken from the extension (png, svg, pdf...). As with vibspec.WriteColumns,
//the image is written to a temporary file first and then renamed.
func Save(filename string, O Options, spectra ...*vibspec.Spectrum) error {
	p, err := New(O, spectra...)
	if err != nil {
		return vibspec.ErrDecorate(err, "specplot.Save")
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format == "" {
		format = "png"
	}
	w, h := O.Width, O.Height
	if w <= 0 || h <= 0 {
		d := DefaultOptions()
		w, h = d.Width, d.Height
	}
	wt, err := writerTo(p, w, h, O.DPI, format)
	if err != nil {
		return err
	}
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return err
	}
	tmpname := tmp.Name()
	if _, err = wt.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpname)
		return fmt.Errorf("specplot: writing %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpname)
		return err
	}
	if err = os.Chmod(tmpname, 0o644); err != nil {
		os.Remove(tmpname)
		return err
	}
	if err = os.Rename(tmpname, filename); err != nil {
		os.Remove(tmpname)
		return err
	}
	return nil
}

//writerTo renders p. Raster formats are drawn at dpi dots per inch,
//the rest are left to plot.WriterTo.
func writerTo(p *plot.Plot, w, h vg.Length, dpi int, format string) (io.WriterTo, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		}
		return vgimg.TiffCanvas{Canvas: c}, nil
	}
	return p.WriterTo(w, h, format)
}

//legendNames returns the legend entry for each spectrum: the base name of
//its file, or the whole cleaned path if two spectra share a base name.
func legendNames(spectra []*vibspec.Spectrum) []string {
	names := make([]string, len(spectra))
	seen := make(map[string]bool, len(spectra))
	clash := false
	for i, s := range spectra {
		if s == nil {
			continue
		}
		names[i] = filepath.Base(s.Name)
		if seen[names[i]] {
			clash = true
		}
		seen[names[i]] = true
	}
	if !clash {
		return names
	}
	for i, s := range spectra {
		if s != nil {
			names[i] = filepath.Clean(s.Name)
		}
	}
	return names
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = math.Mod(h, 360) / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = p
	case 1:
		r = q
		g = v
		b = p
	case 2:
		r = p
		g = v
		b = t
	case 3:
		r = p
		g = q
		b = v
	case 4:
		r = t
		g = p
		b = v
	default: //case 5
		r = v
		g = p
		b = q
	}
	r = r * maxcolor
	g = g * maxcolor
	b = b * maxcolor
	return uint8(r), uint8(g), uint8(b)
}

//colors returns a color for the line key out of steps lines. The first
//line is always blue, the rest are spread over the hue wheel.
func colors(key, steps int) (r, g, b uint8) {
	if steps < 1 {
		steps = 1
	}
	norm := 300.0 / float64(steps)
	h := 220.0 + float64(key)*norm //220 is a blue
	return iHVS2RGB(h, 0.85, 1.0)
}
