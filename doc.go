/*
 * doc.go, part of goshower.
 *
 *
 * Copyright 2025 Jonas Schaefer <jschaefer{at}posteoDOTde>
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
 */

// Package shower decodes the output of CORSIKA air-shower simulations into
// in-memory tables and derives simple physical summaries from them.
//
// The package reads two kinds of simulation products: fixed-record binary
// particle-track files (one record per secondary particle, Fortran
// sequential framing) and the IACT telescope container holding Cherenkov
// photon bunches at the observation plane. Both are decoded once, in full,
// into immutable tables (TrackTable, BunchTable) on which the derived
// metrics operate: shower-start altitude, polar conversion, radial photon
// density and height-binned particle counts.
//
// Format-level decoding lives in the subpackages fortran (sequential
// records) and iact (telescope container). Rendering of the numeric
// results is in package showerplot, and driving the simulator itself in
// package run.
package shower
