/*
 * conversion.go, part of vibspec.
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

//This provides conversion factors and the fixed strings of the ADF output format

//Conversions
const (
	EV2Wavenumber = 8065.54429 //eV * factor = cm^-1
)

//Lineshape
const (
	DefaultFWHM = 20.0 //cm^-1, from doi:10.1021/jp502107f
)

//Section markers in ADF/AMS vibrational output
const (
	RamanHeader = " Frequency (New) [cm-1] | Raman Int. [A^4/amu]"
	ROAHeader   = " Frequency (New) [cm-1] |      Delta(0)"
	Separator   = " -"
)

//Params holds the physical constants and format markers used by the
//parser, the corrector and the convolver. Nothing in this module
//modifies a Params after it is built, so copies can be shared freely.
type Params struct {
	FWHM          float64 //Lorentzian width, cm^-1
	EV2Wavenumber float64
	RamanHeader   string
	ROAHeader     string
	Separator     string
}

//DefaultParams returns the Params for standard ADF outputs.
func DefaultParams() Params {
	return Params{
		FWHM:          DefaultFWHM,
		EV2Wavenumber: EV2Wavenumber,
		RamanHeader:   RamanHeader,
		ROAHeader:     ROAHeader,
		Separator:     Separator,
	}
}

//Check returns an error if the parameters can't be used for a run.
func (P Params) Check() error {
	if P.FWHM <= 0 {
		return NewError(ErrRequest, "", "FWHM must be positive, got %g", P.FWHM).Caller("Params.Check")
	}
	if P.EV2Wavenumber <= 0 {
		return NewError(ErrRequest, "", "eV to wavenumber factor must be positive, got %g", P.EV2Wavenumber).Caller("Params.Check")
	}
	if P.RamanHeader == "" || P.ROAHeader == "" || P.Separator == "" {
		return NewError(ErrRequest, "", "empty section marker").Caller("Params.Check")
	}
	return nil
}
