package module

import (
	"fmt"
	"sort"

	"github.com/vango-dev/routeshell/pkg/view"
)

// Normalize converts a generator result into static params. Accepted shapes:
//
//	[]string, []any of strings          plain segments
//	[]any of [segment, map]             segment with extras
//	[]any of map with a "segment" key   the remaining keys become extras
//	[]view.StaticParam
//
// nil means the generator is absent and yields no params with no complaint.
// Anything else yields no params and a description of the first offending
// value, so the caller can warn about it.
func Normalize(raw any) ([]view.StaticParam, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []view.StaticParam:
		out := make([]view.StaticParam, len(v))
		for i, p := range v {
			out[i] = view.StaticParam{Segment: p.Segment, Extras: copyExtras(p.Extras)}
		}
		return out, nil
	case []string:
		out := make([]view.StaticParam, len(v))
		for i, s := range v {
			out[i] = view.StaticParam{Segment: s}
		}
		return out, nil
	case [][]string:
		out := make([]view.StaticParam, 0, len(v))
		for i, pair := range v {
			if len(pair) != 1 {
				return nil, fmt.Errorf("element %d: expected one segment, got %d values", i, len(pair))
			}
			out = append(out, view.StaticParam{Segment: pair[0]})
		}
		return out, nil
	case []any:
		out := make([]view.StaticParam, 0, len(v))
		for i, item := range v {
			p, err := normalizeItem(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, p)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", raw)
}

func normalizeItem(item any) (view.StaticParam, error) {
	switch v := item.(type) {
	case string:
		return view.StaticParam{Segment: v}, nil
	case view.StaticParam:
		return view.StaticParam{Segment: v.Segment, Extras: copyExtras(v.Extras)}, nil
	case []any:
		if len(v) != 2 {
			return view.StaticParam{}, fmt.Errorf("expected [segment, extras], got %d values", len(v))
		}
		seg, ok := v[0].(string)
		if !ok {
			return view.StaticParam{}, fmt.Errorf("segment is %T, not a string", v[0])
		}
		extras, err := stringMap(v[1])
		if err != nil {
			return view.StaticParam{}, err
		}
		return view.StaticParam{Segment: seg, Extras: extras}, nil
	case map[string]any:
		seg, ok := v["segment"].(string)
		if !ok {
			return view.StaticParam{}, fmt.Errorf("map has no string \"segment\" key")
		}
		extras := make(map[string]string, len(v)-1)
		for k, val := range v {
			if k == "segment" {
				continue
			}
			extras[k] = fmt.Sprint(val)
		}
		if len(extras) == 0 {
			extras = nil
		}
		return view.StaticParam{Segment: seg, Extras: extras}, nil
	}
	return view.StaticParam{}, fmt.Errorf("unsupported element type %T", item)
}

func stringMap(raw any) (map[string]string, error) {
	switch m := raw.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return copyExtras(m), nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = fmt.Sprint(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("extras are %T, not a string map", raw)
}

func copyExtras(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ExtraKeys returns the sorted keys of a param's extras.
func ExtraKeys(p view.StaticParam) []string {
	keys := make([]string, 0, len(p.Extras))
	for k := range p.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
