// Package main is the entry point of plugin-compiler.
//
// plugin-compiler turns module descriptors into registration operation
// streams and the Go code that backs them:
//   - compile: write generated Go, listings and encoded streams
//   - check: validate descriptors and report diagnostics
//   - ops: print the operation sequence of one descriptor
//   - inspect: print the derived names of one descriptor
//   - watch: recompile on change
package main

import "os"

func main() {
	os.Exit(Execute())
}
