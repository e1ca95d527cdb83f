// Package gen renders the Go side of a compiled module.
//
// Generation uses text/template + go/format. For a module Foo the output
// file foo_module.go holds:
//   - FooModuleName and the protocol constants
//   - FooArgs, one field per parameter, and DefaultFooArgs
//   - FooKey<Field> constants with the registration keys
//   - the open label and keys of each submodule
package gen
