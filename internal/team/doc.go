// Package team defines the records scraped for one high school soccer team and
// the values derived from them.
//
// Records are plain values built fresh on every aggregation run. Slices keep the
// row order of the source tables, which drives "top N" style displays, so the
// derived helpers in this package never reorder their inputs in place.
package team
