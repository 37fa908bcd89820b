// Package router implements file-system driven routing for routeshell.
//
// The router provides:
//   - Route discovery from a directory tree (Builder)
//   - Expansion of [param] directories into concrete routes (Expander)
//   - Layout composition around pages and the error page (Composer)
//   - Navigation with history, middleware and typed params (Router)
//
// # Directory Convention
//
// Every directory under the route root is a route. Files inside it supply
// the route's units:
//
//	app/
//	├── layout.go          → wraps every route
//	├── not_found.go       → error page for the whole tree
//	├── page.go            → /
//	├── reports/
//	│   ├── page.md        → /reports
//	│   └── [year]/
//	│       └── page.go    → /reports/2024, /reports/2025, ...
//	└── __ignore__/        → skipped
//
// # Dynamic Routes
//
// A directory named [name] is dynamic. Its page declares the values it can
// take and Expand materializes one route per value before any navigation:
//
//	func GenerateStaticParams() []string { return []string{"2024", "2025"} }
//
// Nested dynamic directories expand to the cartesian product of the values
// along their lineage, outer level first. The bracket names are recovered
// positionally at render time and passed in props.Params.
//
// # Usage
//
//	table, err := router.NewBuilder(fs).Build("/")
//	table, err = router.Expand(table)
//
//	r := router.New(table, renderer)
//	r.Navigate("/reports/2024")
//	// renderer now holds chrome + root(reports(page)) with Params["year"] == "2024"
package router
