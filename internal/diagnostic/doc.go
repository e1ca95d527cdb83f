// Package diagnostic provides positioned errors and warnings for the
// descriptor compiler.
//
// Key capabilities:
//   - A fixed error taxonomy (grammar, unknown key, missing key, type,
//     range, annotation, prefix, nesting, loader, emit)
//   - Sentinel matching with errors.Is per error kind
//   - Non-fatal warnings collected alongside the first fatal error
//   - Rendering through HCL's diagnostic writer with source snippets
package diagnostic
