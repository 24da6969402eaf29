/*
 * spectrum.go, part of vibspec.
 *
 *
 * Copyright 2024 The vibspec Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package vibspec

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Spectrum is a broadened spectrum: one intensity per grid point.
//Freqs is the grid, and can be shared among spectra, so don't modify it.
type Spectrum struct {
	Name  string //usually the log file the spectrum came from
	Freqs []float64
	Ints  []float64
}

//Len returns the number of grid points.
func (S *Spectrum) Len() int {
	return len(S.Ints)
}

//MaxAbs returns the largest absolute intensity in the spectrum, 0 for an empty one.
func (S *Spectrum) MaxAbs() float64 {
	return maxAbs(S.Ints)
}

//MaxGridPoints is the largest grid Grid builds. At 1 point per cm^-1
//it is far beyond any vibrational spectrum.
const MaxGridPoints = 1000000

//GridPoints returns the number of points Grid(min, max) would have.
//Non-finite bounds, max<min, or more than MaxGridPoints points give an
//ErrRange error.
func GridPoints(min, max float64) (int, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, NewError(ErrRange, "", "non-finite bounds [%g, %g]", min, max).Caller("GridPoints")
	}
	if max < min {
		return 0, NewError(ErrRange, "", "freqmax (%g) is smaller than freqmin (%g)", max, min).Caller("GridPoints")
	}
	//compared as floats, the difference may not fit in an int.
	if d := math.Floor(max - min); math.IsInf(d, 0) || d > MaxGridPoints {
		return 0, NewError(ErrRange, "", "[%g, %g] needs more than %d grid points", min, max, MaxGridPoints).Caller("GridPoints")
	}
	return int(math.Floor(max - min)), nil
}

//Grid returns floor(max-min) evenly spaced points from min to max, both
//included. As with linspace, a 0-point grid is empty and a 1-point grid is
//just min. See GridPoints for the ranges that give an ErrRange error.
func Grid(min, max float64) ([]float64, error) {
	n, err := GridPoints(min, max)
	if err != nil {
		return nil, ErrDecorate(err, "Grid")
	}
	switch n {
	case 0:
		return []float64{}, nil
	case 1:
		return []float64{min}, nil
	}
	g := floats.Span(make([]float64, n), min, max)
	g[n-1] = max //exact end point, as linspace
	return g, nil
}

//Convolve broadens the stick spectrum S over the points of grid with a
//Lorentzian-like kernel, so each point x gets
//sum_k fwhm/((x-f_k)^2+fwhm) * I_k.
//Note that fwhm enters the denominator as is, not as (fwhm/2)^2.
//Neither grid nor S are modified; the result is always a new slice.
func Convolve(grid []float64, S *Sticks, P Params) []float64 {
	n := len(grid)
	m := S.Len()
	if n == 0 {
		return []float64{}
	}
	ret := make([]float64, n)
	if m == 0 {
		return ret
	}
	kernel := mat.NewDense(n, m, nil)
	for i, x := range grid {
		for k, f := range S.Freqs {
			d := x - f
			kernel.Set(i, k, P.FWHM/(d*d+P.FWHM))
		}
	}
	ints := mat.NewVecDense(m, append([]float64(nil), S.Ints...))
	out := mat.NewVecDense(n, ret)
	out.MulVec(kernel, ints)
	return ret
}

//NewSpectrum convolves S over grid and returns the result as a Spectrum
//named name.
func NewSpectrum(name string, grid []float64, S *Sticks, P Params) *Spectrum {
	return &Spectrum{Name: name, Freqs: grid, Ints: Convolve(grid, S, P)}
}

//Normalize divides every value in every slice by the largest absolute
//value found among all of them, so spectra normalized together keep their
//relative scale. It returns that value. If it is zero (or there is no data)
//nothing is changed, and ok is false.
func Normalize(data ...[]float64) (norm float64, ok bool) {
	for _, v := range data {
		if m := maxAbs(v); m > norm {
			norm = m
		}
	}
	if norm == 0 {
		return 0, false
	}
	for _, v := range data {
		floats.Scale(1/norm, v)
	}
	return norm, true
}

//NormalizeSpectra is Normalize for Spectrum values.
func NormalizeSpectra(spectra ...*Spectrum) (float64, bool) {
	data := make([][]float64, 0, len(spectra))
	for _, s := range spectra {
		data = append(data, s.Ints)
	}
	return Normalize(data...)
}

func maxAbs(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(v)), math.Abs(floats.Min(v)))
}
