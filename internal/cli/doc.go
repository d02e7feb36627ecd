// Package cli implements the diskanalyzer command: flag and config handling,
// pattern files, and sorting and rendering of the analysis.
package cli
