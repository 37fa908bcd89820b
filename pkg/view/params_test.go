package view

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/vango-dev/routeshell/internal/errors"
)

func bind(params map[string]string, target any) error {
	return Props{Params: params}.Bind(target)
}

func TestBindString(t *testing.T) {
	var p struct {
		Name string `param:"name"`
		Skip string
	}
	if err := bind(map[string]string{"name": "test", "Skip": "x"}, &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.Name != "test" || p.Skip != "" {
		t.Errorf("Bind() = %+v", p)
	}
}

func TestBindNumbers(t *testing.T) {
	type Params struct {
		ID    int     `param:"id"`
		Big   int64   `param:"big"`
		Count uint8   `param:"count"`
		Ratio float64 `param:"ratio"`
		On    bool    `param:"on"`
	}

	params := map[string]string{
		"id":    "123",
		"big":   "9223372036854775807",
		"count": "255",
		"ratio": "0.5",
		"on":    "true",
	}

	var p Params
	if err := bind(params, &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	want := Params{ID: 123, Big: 9223372036854775807, Count: 255, Ratio: 0.5, On: true}
	if p != want {
		t.Errorf("Bind() = %+v, want %+v", p, want)
	}
}

func TestBindSlice(t *testing.T) {
	var p struct {
		Period []string `param:"period"`
	}
	if err := bind(map[string]string{"period": "2024/q1"}, &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if !reflect.DeepEqual(p.Period, []string{"2024", "q1"}) {
		t.Errorf("Period = %v, want [2024 q1]", p.Period)
	}
}

func TestBindUUID(t *testing.T) {
	var p struct {
		ID uuid.UUID `param:"id"`
	}

	id := uuid.New()
	if err := bind(map[string]string{"id": id.String()}, &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.ID != id {
		t.Errorf("ID = %s, want %s", p.ID, id)
	}

	if err := bind(map[string]string{"id": "nope"}, &p); err == nil {
		t.Error("Bind() with bad UUID should fail")
	}
}

func TestBindErrors(t *testing.T) {
	type Params struct {
		ID   int    `param:"id"`
		Slug string `param:"slug,required"`
	}

	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad int", map[string]string{"id": "abc", "slug": "x"}},
		{"int overflow", map[string]string{"id": "99999999999999999999", "slug": "x"}},
		{"missing required", map[string]string{"id": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			err := bind(tt.params, &p)
			if err == nil {
				t.Fatal("Bind() should fail")
			}
			if !errors.HasCode(err, "E101") {
				t.Errorf("Bind() error = %v, want E101", err)
			}
		})
	}
}

func TestBindMissingOptional(t *testing.T) {
	type Params struct {
		ID int `param:"id"`
	}

	p := Params{ID: 7}
	if err := (Props{}).Bind(&p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("ID = %d, want untouched 7", p.ID)
	}
}

func TestBindTargetKinds(t *testing.T) {
	if err := bind(nil, nil); err != nil {
		t.Errorf("Bind(nil) error = %v", err)
	}

	var s struct{}
	if err := bind(nil, s); err == nil {
		t.Error("Bind() with non-pointer should fail")
	}

	var n int
	if err := bind(nil, &n); err == nil {
		t.Error("Bind() with pointer to non-struct should fail")
	}
}
