/*
 * doc.go, part of vibspec.
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

/*
Package vibspec builds broadened Raman and ROA spectra from the stick
spectra that ADF/AMS prints in its vibrational analysis.

	**vibspec Capabilities**

	Applies the incident-field correction I*(E-f)^4/f to a stick spectrum.

	Generates linspace-like frequency grids.

	Broadens stick spectra with a fixed-width Lorentzian kernel.

	Normalizes one or more spectra jointly, by their common absolute maximum,
	so the relative scale between them is kept.

	Writes and reads the two-column text files used for the results.

The ADF log parser lives in the adf subpackage, plotting in specplot, and
the complete read-correct-broaden-write sequence in pipeline. The vibspec
command (cmd/vibspec) puts it all together.
*/
package vibspec
