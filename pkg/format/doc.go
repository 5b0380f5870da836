// Package format enumerates the output formats Graphviz can produce and
// resolves each one to the token its command line expects after -T.
//
// # Catalog
//
// [Format] is a closed enumeration. [All] lists every format in declaration
// order, [Format.Description] gives a short human-readable description and
// [Parse] looks a format up by its catalog name:
//
//	f, err := format.Parse("xdot12")
//	fmt.Println(f.Description()) // DOT Format
//
// # Resolution
//
// [Resolve] (and the panicking [Format.Token]) map a format to its engine
// token:
//
//	format.Svg.Token()    // "svg"
//	format.Xdot12.Token() // "xdot1.2"
//
// Two tokens are irregular and kept for compatibility with existing exports:
// [Canon] resolves to "fig" and [Xdot14] to "dot1.4".
//
// A catalog format without an explicit token resolves to the token of
// [Default] (SVG). Values outside the catalog are rejected with an
// INVALID_VARIANT error from [github.com/matzehuels/gvexport/pkg/errors].
//
// Catalog and resolver are immutable tables and safe for concurrent use.
package format
