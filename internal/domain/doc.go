// Package domain models Digital Water Level Recorder (DWLR) groundwater
// monitoring stations and the pure classification rules applied to them.
//
// # Station Records
//
// Each station carries a depth-to-water reading (metres below ground level),
// static well depth, aquifer formation, water quality parameters (pH, TDS in
// mg/L, salinity in ppt), seasonal rainfall in mm, and a 0–100 aquifer quality
// index. Records loaded from a dataset are treated as immutable; simulated
// readings are produced on clones.
//
// # Categorization
//
// All classifiers use strict less-than thresholds, so a value sitting exactly
// on a boundary belongs to the upper category:
//
//	Water level:   <2 m low     | <5 m moderate    | ≥5 m high
//	Rainfall:      <50 mm low   | <150 mm moderate | ≥150 mm high
//	Quality index: <40 poor     | <60 moderate     | <80 good | ≥80 excellent
//
// NaN compares false against every threshold and therefore lands in the top
// category. Callers that accept external input validate it first.
//
// # Theme
//
// A stored [ThemePreference] (light, dark, system) resolves to a closed
// [Scheme] and a fixed [Palette] lookup. No palette is built at runtime.
package domain
