// Package view defines the abstract control tree that route units produce and
// display surfaces consume.
//
// A page, layout or not-found unit returns a slice of *Control. The routing core
// never inspects controls beyond passing them between layouts; surfaces decide
// how each Kind is drawn. The terminal surface draws them with lipgloss, the
// in-memory surface keeps them for inspection and tests.
//
//	func Page(props view.Props) []*view.Control {
//	    return []*view.Control{
//	        view.Heading(1, "Reports"),
//	        view.Text("id: " + props.Params["id"]),
//	        view.Link("Back", "/reports"),
//	    }
//	}
package view
