/*
 * pipeline.go, part of vibspec.
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

//Package pipeline runs a complete Raman or ROA analysis: it reads the
//stick spectra from the ADF outputs, corrects and broadens them,
//normalizes them if asked to, and writes the results.
package pipeline

import (
	"os"
	"strings"

	"github.com/rmera/vibspec"
	"github.com/rmera/vibspec/adf"
	"github.com/rmera/vibspec/specplot"
	"github.com/rs/zerolog"
)

//Result is what a successful run produced.
type Result struct {
	Grid       []float64
	Sticks     []*vibspec.Sticks   //corrected stick spectra, one per input
	Spectra    []*vibspec.Spectrum //one per input, same order
	Norm       float64             //the factor all spectra were divided by, if normalized
	Normalized bool
	Files      []string //everything written, in order
}

//Compute does all the work of a run except writing. It validates R,
//checks the inputs and returns the corrected sticks and broadened spectra.
func Compute(R Request, log zerolog.Logger) (*Result, error) {
	if err := R.Validate(); err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	if err := adf.CheckFiles(R.Inputs...); err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	if err := checkOutDir(R); err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	all, counts, err := adf.ReadFiles(R.Inputs, R.Kind, R.Pol, R.Params)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	parts, err := all.Split(counts)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	res := &Result{
		Sticks:  make([]*vibspec.Sticks, 0, len(parts)),
		Spectra: make([]*vibspec.Spectrum, 0, len(parts)),
	}
	for i, p := range parts {
		name := R.Inputs[i]
		log.Debug().Str("file", name).Int("modes", p.Len()).Str("analysis", R.Kind.String()).Msg("stick spectrum read")
		if p.Len() == 0 {
			log.Warn().Str("file", name).Str("analysis", R.Kind.String()).Msg("no modes found in file, the spectrum will be zero")
		}
		c, err := vibspec.Correct(p, R.IncomingFieldEV, R.Params)
		if err != nil {
			return nil, vibspec.ErrDecorate(err, "Compute")
		}
		res.Sticks = append(res.Sticks, c)
	}
	res.Grid, err = vibspec.Grid(R.FreqMin, R.FreqMax)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "Compute")
	}
	for i, s := range res.Sticks {
		res.Spectra = append(res.Spectra, vibspec.NewSpectrum(R.Inputs[i], res.Grid, s, R.Params))
	}
	if R.Normalize {
		res.Norm, res.Normalized = vibspec.NormalizeSpectra(res.Spectra...)
		if res.Normalized {
			log.Debug().Float64("norm", res.Norm).Int("spectra", len(res.Spectra)).Msg("spectra normalized jointly")
		} else {
			log.Warn().Msg("all spectra are zero, normalization skipped")
		}
	}
	return res, nil
}

//checkOutDir returns an ErrMissingFile error if the plot is requested
//and its directory doesn't exist.
func checkOutDir(R Request) error {
	if !R.Plot || R.OutDir == "" {
		return nil
	}
	info, err := os.Stat(R.OutDir)
	if err != nil {
		return vibspec.NewError(vibspec.ErrMissingFile, R.OutDir, "output directory: %s", err.Error()).Caller("checkOutDir")
	}
	if !info.IsDir() {
		return vibspec.NewError(vibspec.ErrMissingFile, R.OutDir, "output directory is not a directory").Caller("checkOutDir")
	}
	return nil
}

//Run computes the spectra requested in R and writes them. Nothing is
//written until every spectrum has been computed. If a write fails, the
//files this run created are removed. Files that existed before the run
//are never removed, although they may have been overwritten.
func Run(R Request, log zerolog.Logger) (*Result, error) {
	res, err := Compute(R, log)
	if err != nil {
		return nil, vibspec.ErrDecorate(err, "Run")
	}
	var created []string
	if err := write(R, res, &created, log); err != nil {
		for _, f := range created {
			os.Remove(f)
		}
		res.Files = nil
		return nil, vibspec.ErrDecorate(err, "Run")
	}
	return res, nil
}

//write writes every output of res. The files that didn't exist before
//are appended to created.
func write(R Request, res *Result, created *[]string, log zerolog.Logger) error {
	save := func(name string, f func() error) error {
		_, statErr := os.Stat(name)
		if err := f(); err != nil {
			return err
		}
		if os.IsNotExist(statErr) {
			*created = append(*created, name)
		}
		res.Files = append(res.Files, name)
		return nil
	}
	for i, s := range res.Spectra {
		name := R.CSVName(R.Inputs[i])
		if err := save(name, func() error { return vibspec.WriteColumns(name, s.Freqs, s.Ints) }); err != nil {
			return err
		}
		log.Info().Str("file", name).Int("points", s.Len()).Msg("spectrum written")
	}
	if R.Sticks {
		for i, s := range res.Sticks {
			name := R.SticksName(R.Inputs[i])
			if err := save(name, func() error { return vibspec.WriteColumns(name, s.Freqs, s.Ints) }); err != nil {
				return err
			}
			log.Info().Str("file", name).Int("modes", s.Len()).Msg("stick spectrum written")
		}
	}
	if R.Plot {
		name := R.PlotName()
		if err := save(name, func() error { return specplot.Save(name, plotOptions(R), res.Spectra...) }); err != nil {
			return err
		}
		log.Info().Str("file", name).Msg("plot written")
	}
	return nil
}

func plotOptions(R Request) specplot.Options {
	O := specplot.DefaultOptions()
	if R.Kind == adf.ROA {
		O.Title = "ROA Spectrum - " + strings.ToUpper(string(R.Pol))
	} else {
		O.Title = "RAMAN Spectrum"
	}
	O.YLabel = "I_R - I_L (a.u.)"
	if R.Normalize {
		O.YLabel = "I_R - I_L (arb. units)"
	}
	O.InvertX = true
	O.Legend = len(R.Inputs) > 1
	O.XMin = R.FreqMin
	O.XMax = R.FreqMax
	return O
}
