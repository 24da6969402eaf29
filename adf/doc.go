/*
 * doc.go, part of vibspec.
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
 * */

//Package adf reads the Raman and ROA stick spectra from ADF/AMS
//output files. Only the layout of the vibrational analysis tables
//printed by ADF is supported.
//
//A table starts with a header line, then a line starting with " -",
//then one row per normal mode, and ends at the first blank line.
//The frequency is the third column of each row. For Raman, the
//intensity is the fourth column, for ROA it is one of the columns
//4 to 7, depending on the polarization.
package adf
