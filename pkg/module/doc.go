// Package module loads route files as isolated units.
//
// A unit exposes one entry function (Page, Layout or NotFound) and a set of
// named auxiliary functions. Every name the unit's Spec lists is callable: a
// file that does not define one gets a no-op that returns nothing.
//
// Three loaders are provided and chained by extension through Resolver:
//
//	.go  Registry (compiled units registered by file path), then Interpreter
//	     (the file is evaluated with yaegi in its own interpreter)
//	.md  Markdown (goldmark document, YAML front matter for title and params)
//
// Missing files fail with E105 and files that cannot be parsed or executed fail
// with E106. Both are fatal when the route tree is built.
package module
