/*
Package dsl provides a fluent builder for graph scenario params.

Built-in presets are plain parameter maps so they travel through the same
decode and validation path as presets loaded from a scenario file. The
builder keeps those maps readable in Go code.

Example usage:

	b := dsl.New().Directed()
	b.Add("cs101").To("cs102").To("math201")
	b.Add("cs102").To("cs201")

	preset := scenario.Preset{
		Name:   "courses",
		Params: map[string]any{"graph": b.Params()},
	}
*/
package dsl
