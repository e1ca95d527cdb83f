package main

import (
	"io"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/compiler"
	"plugin-compiler/internal/diagnostic"
)

// report prints the diagnostics of res, and err when it is not already
// among them.
func report(w io.Writer, res *compiler.Result, err error) {
	var diags hcl.Diagnostics
	if res != nil {
		diags = res.Diagnostics.HCL()
	}

	if err != nil && (res == nil || !res.Diagnostics.HasErrors()) {
		diags = append(diags, diagnostic.FromError(err)...)
	}

	if len(diags) == 0 {
		return
	}

	sources := map[string][]byte{}
	if res != nil && res.Source != nil {
		sources[res.Filename] = res.Source
	}

	_ = diagnostic.Write(w, sources, diags, false)
}
