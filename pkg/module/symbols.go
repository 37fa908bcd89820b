package module

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/vango-dev/routeshell/pkg/view"
)

// ViewImportPath is the import path route scripts use for the view package.
const ViewImportPath = "github.com/vango-dev/routeshell/pkg/view"

// Symbols exposes the view package to interpreted route files.
var Symbols = interp.Exports{
	ViewImportPath + "/view": {
		// types
		"Control":     reflect.ValueOf((*view.Control)(nil)),
		"Display":     reflect.ValueOf((*view.Display)(nil)),
		"Kind":        reflect.ValueOf((*view.Kind)(nil)),
		"Metadata":    reflect.ValueOf((*view.Metadata)(nil)),
		"Navigator":   reflect.ValueOf((*view.Navigator)(nil)),
		"Props":       reflect.ValueOf((*view.Props)(nil)),
		"StaticParam": reflect.ValueOf((*view.StaticParam)(nil)),
		"Tone":        reflect.ValueOf((*view.Tone)(nil)),

		// constants
		"KindButton":    reflect.ValueOf(view.KindButton),
		"KindCode":      reflect.ValueOf(view.KindCode),
		"KindColumn":    reflect.ValueOf(view.KindColumn),
		"KindDivider":   reflect.ValueOf(view.KindDivider),
		"KindHeading":   reflect.ValueOf(view.KindHeading),
		"KindLink":      reflect.ValueOf(view.KindLink),
		"KindMarkdown":  reflect.ValueOf(view.KindMarkdown),
		"KindRow":       reflect.ValueOf(view.KindRow),
		"KindSearchBar": reflect.ValueOf(view.KindSearchBar),
		"KindSpacer":    reflect.ValueOf(view.KindSpacer),
		"KindText":      reflect.ValueOf(view.KindText),
		"ToneAccent":    reflect.ValueOf(view.ToneAccent),
		"ToneDefault":   reflect.ValueOf(view.ToneDefault),
		"ToneError":     reflect.ValueOf(view.ToneError),
		"ToneMuted":     reflect.ValueOf(view.ToneMuted),

		// functions
		"Button":    reflect.ValueOf(view.Button),
		"Code":      reflect.ValueOf(view.Code),
		"Column":    reflect.ValueOf(view.Column),
		"Divider":   reflect.ValueOf(view.Divider),
		"Error":     reflect.ValueOf(view.Error),
		"Find":      reflect.ValueOf(view.Find),
		"Heading":   reflect.ValueOf(view.Heading),
		"Link":      reflect.ValueOf(view.Link),
		"Markdown":  reflect.ValueOf(view.Markdown),
		"Muted":     reflect.ValueOf(view.Muted),
		"Plain":     reflect.ValueOf(view.Plain),
		"Row":       reflect.ValueOf(view.Row),
		"SearchBar": reflect.ValueOf(view.SearchBar),
		"Spacer":    reflect.ValueOf(view.Spacer),
		"Targets":   reflect.ValueOf(view.Targets),
		"Text":      reflect.ValueOf(view.Text),
	},
}
