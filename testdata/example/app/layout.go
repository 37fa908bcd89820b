package app

import "github.com/vango-dev/routeshell/pkg/view"

func Layout(props view.Props) []*view.Control {
	out := []*view.Control{view.Muted("example shell"), view.Divider()}
	return append(out, props.Children...)
}
