// Package wire encodes registration operations as a framed binary stream
// and decodes them back.
//
// Layout, big-endian:
//
//	header  "PCOP" | version u8 | op count u32
//	op      opcode u16 | target u32 | field count u16 | fields...
//	field   id u16 | type u8 | length u32 | bytes
//
// Strings are NUL-terminated. Categories travel as their numeric
// subcategory value.
package wire
