/*
 * sticks.go, part of vibspec.
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
)

//Sticks is a stick spectrum: one (frequency, intensity) pair per normal mode,
//in the order they were read. Freqs are in cm^-1. Both slices always have
//the same length.
type Sticks struct {
	Freqs []float64
	Ints  []float64
}

//NewSticks returns an empty stick spectrum with room for n modes.
func NewSticks(n int) *Sticks {
	return &Sticks{Freqs: make([]float64, 0, n), Ints: make([]float64, 0, n)}
}

//Len returns the number of modes.
func (S *Sticks) Len() int {
	if S == nil {
		return 0
	}
	return len(S.Freqs)
}

//Append adds one mode at the end.
func (S *Sticks) Append(freq, intensity float64) {
	S.Freqs = append(S.Freqs, freq)
	S.Ints = append(S.Ints, intensity)
}

//AppendSticks adds all the modes in B at the end of S.
func (S *Sticks) AppendSticks(B *Sticks) {
	S.Freqs = append(S.Freqs, B.Freqs...)
	S.Ints = append(S.Ints, B.Ints...)
}

//Copy returns a deep copy of S.
func (S *Sticks) Copy() *Sticks {
	ret := NewSticks(S.Len())
	ret.Freqs = append(ret.Freqs, S.Freqs...)
	ret.Ints = append(ret.Ints, S.Ints...)
	return ret
}

//Split cuts a stick spectrum built by concatenating several files back
//into one stick spectrum per file. counts[i] is the number of modes that
//came from file i. The returned values are copies.
func (S *Sticks) Split(counts []int) ([]*Sticks, error) {
	total := 0
	for _, c := range counts {
		if c < 0 {
			return nil, NewError(ErrRequest, "", "negative mode count %d", c).Caller("Sticks.Split")
		}
		total += c
	}
	if total != S.Len() {
		return nil, NewError(ErrRequest, "", "counts add to %d modes, spectrum has %d", total, S.Len()).Caller("Sticks.Split")
	}
	ret := make([]*Sticks, 0, len(counts))
	ini := 0
	for _, c := range counts {
		part := &Sticks{Freqs: S.Freqs[ini : ini+c], Ints: S.Ints[ini : ini+c]}
		ret = append(ret, part.Copy())
		ini += c
	}
	return ret, nil
}

//Correct returns a new stick spectrum with the same frequencies as S and the
//intensities scaled by (E-f)^4/f, where E is the energy of the incident
//field, given in eV and converted to cm^-1 with P.EV2Wavenumber, and f is the
//frequency of each mode. S is not modified.
//A mode with zero frequency gives an ErrZeroFrequency error.
func Correct(S *Sticks, incomingEV float64, P Params) (*Sticks, error) {
	e := incomingEV * P.EV2Wavenumber
	ret := NewSticks(S.Len())
	for i, f := range S.Freqs {
		if f == 0 {
			return nil, NewError(ErrZeroFrequency, "", "mode %d has zero frequency, can't apply the intensity correction", i+1).Caller("Correct")
		}
		ret.Append(f, S.Ints[i]*math.Pow(e-f, 4)/f)
	}
	return ret, nil
}
