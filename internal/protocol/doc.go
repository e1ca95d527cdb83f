// Package protocol describes the registration protocol that compiled
// modules are lowered to.
//
// The protocol is external and fixed. This package only models its
// boundary:
//   - Opcode, the closed set of registration operations
//   - Emitter, the callback that receives operations and returns a Status
//   - Handle, the module and config cursors the emitter hands back
//   - ItemKind and Subcategory, the protocol's numeric enumerations
//   - Loader and Registry, which resolve a module's activation callbacks
//
// Recorder is an Emitter that keeps every operation in memory. It is what
// the compiler uses by default and what the tests assert against.
package protocol

// Protocol constants passed through verbatim to generated code.
const (
	APIVersion = "4.0.6"
	Copyright  = "COPYRIGHT_VIDEOLAN"
	License    = "LICENSE_LGPL_2_1_PLUS"
)
