// Package descriptor defines the typed tree produced by parsing a module
// description: the module itself, its capability, prefix, parameters,
// sections and sub-modules.
//
// The tree is pure data. Source spans are carried next to every node for
// diagnostics only and take no part in the semantics. Literal values are
// held as cty values so numeric coercion (overflow, whole-number checks)
// goes through one well-tested path.
//
// A Module is built once by the parser, checked by the validator and read
// by the lowering engine; nothing mutates it after validation.
package descriptor
