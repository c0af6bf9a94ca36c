// Package mathbox parses TeX-style math markup and lays it out as a tree of
// measured boxes.
//
// Parsing and layout are separate stages. Parse turns the source into a
// list of nodes using a function registry; Layout turns nodes into boxes
// whose heights, depths and widths are in ems of the base font. Build runs
// both and wraps the result in a root box carrying a strut of the full
// height and depth.
//
// Core properties:
//   - Greediness-driven argument parsing with an extensible Registry
//   - Style-aware layout following the TeX math spacing rules
//   - Immutable Options; every style or size change derives a new value
//   - Errors typed by stage with source positions
//
// Example:
//
//	root, err := mathbox.Build(`\frac{a}{b} + \sqrt{x^2}`, mathbox.WithDisplayMode(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = mathbox.WriteBoxTree(root, mathbox.DumpRequest{
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  mathbox.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// New commands are added by extending DefaultRegistry with FunctionSpecs;
// a spec with a Builder produces CustomNodes laid out by that builder.
package mathbox
