// Package lower turns a validated descriptor.Module into the ordered
// registration operations of package protocol.
//
// Per module the sequence is fixed: module creation (and, for the
// top-level module only, its name), capability, score, description, the
// optional help, shortname and shortcuts, the open and close callbacks,
// the config subcategory, then every parameter in declaration order.
// Submodules follow, each created from the current module handle.
//
// Each operation type in ops.go maps to exactly one protocol.Opcode, so a
// type switch over protocol.Op is exhaustive. Record lowers against an
// in-memory recorder and returns a Program that can be listed, exported
// as YAML or replayed into another emitter.
package lower
