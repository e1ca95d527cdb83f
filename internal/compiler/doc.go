// Package compiler drives a descriptor through the whole pipeline:
// parse, validate, derive names and lower to registration operations.
//
// The core packages stay free of logging and I/O; this package adds both.
package compiler
