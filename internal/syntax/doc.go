// Package syntax turns descriptor source text into a descriptor.Module.
//
// The grammar is a list of `key: value` entries. Entries may carry
// annotations, written `#[name]`, `#[name = literal]` or
// `#[name(key = literal, ...)]`; the inner form `#![...]` is only accepted
// for sections on parameters.
//
//	type: Foo(FooLoader),
//	capability: "decoder" @ 50,
//	category: Video,
//	description: "Foo decoder",
//	#[prefix = "foo"]
//	params: {
//	    #[rgb]
//	    color: i64 { default: 0xFF00FF, text: "Color", long_text: "Text color" },
//	},
//
// Parsing stops at the first structural error. Cross-field rules such as
// required module keys and range applicability are checked by package
// validate.
package syntax
