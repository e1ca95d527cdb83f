package compiler_test

import (
	"os"

	"github.com/rs/zerolog"

	"plugin-compiler/internal/compiler"
)

func ExampleCompiler_Compile() {
	c := compiler.New(compiler.Options{Logger: zerolog.Nop()})

	res, err := c.Compile("foo.desc", []byte(`type: Foo(Loader), capability: "decoder" @ 50, category: Video, description: "Foo decoder"`))
	if err != nil {
		panic(err)
	}

	_ = res.Program.WriteText(os.Stdout)
	// Output:
	//   0  nil -> #1   CREATE_MODULE
	//   1   #1         SET_NAME("foo-rs")
	//   2   #1         SET_CAPABILITY("decoder")
	//   3   #1         SET_SCORE(50)
	//   4   #1         SET_DESCRIPTION("Foo decoder")
	//   5   #1         SET_OPEN_CALLBACK("Foo-open", Loader::activate_Foo)
	//   6  nil -> #2   CREATE_CONFIG_SUBCATEGORY(Video)
}
