/*
 * request.go, part of vibspec.
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

package pipeline

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/rmera/vibspec"
	"github.com/rmera/vibspec/adf"
)

//Maximum number of outputs in one ROA run.
const maxROAInputs = 2

//Request contains everything needed for one run. Build it, call Validate
//(Run does it anyway) and don't change it afterwards.
type Request struct {
	Kind            adf.Kind
	Inputs          []string //ADF outputs, 1 for Raman, 1 or 2 for ROA
	FreqMin         float64  //cm^-1
	FreqMax         float64
	IncomingFieldEV float64
	Pol             adf.Polarization //only for ROA
	Normalize       bool
	Sticks          bool   //also write the corrected stick spectra
	Plot            bool   //draw the png
	OutDir          string //where the plot goes, "" is the current directory
	Params          vibspec.Params
}

//NewRequest returns a Request with the default parameters and plotting enabled.
func NewRequest(kind adf.Kind, inputs ...string) Request {
	return Request{
		Kind:   kind,
		Inputs: inputs,
		Plot:   true,
		Params: vibspec.DefaultParams(),
	}
}

func reqError(format string, args ...any) error {
	return vibspec.NewError(vibspec.ErrRequest, "", format, args...).Caller("Request.Validate")
}

//Validate returns an error if R can't be run. It doesn't check that
//the input files exist.
func (R Request) Validate() error {
	if err := R.Params.Check(); err != nil {
		return vibspec.ErrDecorate(err, "Request.Validate")
	}
	switch R.Kind {
	case adf.Raman:
		if len(R.Inputs) != 1 {
			return reqError("raman analysis takes exactly one input file, %d given", len(R.Inputs))
		}
	case adf.ROA:
		if len(R.Inputs) < 1 || len(R.Inputs) > maxROAInputs {
			return reqError("roa analysis takes one or two input files, %d given", len(R.Inputs))
		}
		if R.Pol == "" {
			return reqError("a polarization is required for roa analysis")
		}
		if _, err := R.Pol.Column(); err != nil {
			return vibspec.ErrDecorate(err, "Request.Validate")
		}
	default:
		return reqError("unknown analysis kind %d", int(R.Kind))
	}
	for _, v := range R.Inputs {
		if strings.TrimSpace(v) == "" {
			return reqError("empty input file name")
		}
	}
	for _, v := range []float64{R.FreqMin, R.FreqMax, R.IncomingFieldEV} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return reqError("non-finite numeric parameter %g", v)
		}
	}
	if _, err := vibspec.GridPoints(R.FreqMin, R.FreqMax); err != nil {
		return vibspec.ErrDecorate(err, "Request.Validate")
	}
	if R.IncomingFieldEV <= 0 {
		return reqError("the incoming field energy must be positive, got %g eV", R.IncomingFieldEV)
	}
	return R.checkOutputs()
}

//checkOutputs returns an error if two inputs would write to the same file,
//as mol.out and mol.log do.
func (R Request) checkOutputs() error {
	owner := make(map[string]string, 2*len(R.Inputs))
	for _, in := range R.Inputs {
		names := []string{R.CSVName(in)}
		if R.Sticks {
			names = append(names, R.SticksName(in))
		}
		for _, name := range names {
			name = filepath.Clean(name)
			if prev, ok := owner[name]; ok {
				return reqError("inputs %s and %s would both be written to %s", prev, in, name)
			}
			owner[name] = in
		}
	}
	return nil
}

//suffix returns the tag that identifies the analysis in output names,
//e.g. RAMAN or ROA_x.
func (R Request) suffix() string {
	if R.Kind == adf.ROA {
		return "ROA_" + string(R.Pol)
	}
	return "RAMAN"
}

//CSVName returns the name of the file where the spectrum read from input is written.
func (R Request) CSVName(input string) string {
	name := adf.BaseName(input) + "_" + R.suffix()
	if R.Normalize {
		name += "_NORM"
	}
	return name + ".csv"
}

//SticksName returns the name of the file where the corrected stick spectrum
//read from input is written, if requested.
func (R Request) SticksName(input string) string {
	if R.Kind == adf.ROA {
		return adf.BaseName(input) + "_ROA_STICKS_" + string(R.Pol) + ".csv"
	}
	return adf.BaseName(input) + "_RAMAN_STICKS.csv"
}

//PlotName returns the name of the image file, which doesn't depend on the inputs.
func (R Request) PlotName() string {
	var name string
	if R.Kind == adf.ROA {
		name = "ROA_spectrum_" + string(R.Pol)
	} else {
		name = "RAMAN_spectrum"
	}
	if R.Normalize {
		name += "_NORM"
	}
	return filepath.Join(R.OutDir, name+".png")
}
