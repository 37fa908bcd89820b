package items

import "github.com/vango-dev/routeshell/pkg/view"

func Page(props view.Props) []*view.Control {
	return []*view.Control{
		view.Heading(1, "Items"),
		view.Link("Alpha", "/items/alpha"),
		view.Link("Beta", "/items/beta"),
	}
}
