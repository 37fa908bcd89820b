package view

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vango-dev/routeshell/internal/errors"
)

// Bind parses p.Params into the struct target points to, using each field's
// `param` tag. A ",required" option fails when the param is absent; other
// missing params leave the field untouched. Conversion failures are E101
// errors naming the parameter.
//
//	var item struct {
//	    ID   int    `param:"id"`
//	    Tags []string `param:"tags"`
//	}
//	if err := props.Bind(&item); err != nil { ... }
func (p Props) Bind(target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, opts, _ := strings.Cut(field.Tag.Get("param"), ",")
		if name == "" {
			continue
		}

		value, ok := p.Params[name]
		if !ok {
			if opts == "required" {
				return errors.New("E101").WithDetail(fmt.Sprintf("missing required param %q", name))
			}
			continue
		}

		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if err := setParam(fv, value); err != nil {
			return errors.New("E101").WithDetail(fmt.Sprintf("param %q", name)).Wrap(err)
		}
	}
	return nil
}

var uuidType = reflect.TypeOf(uuid.UUID{})

func setParam(field reflect.Value, value string) error {
	if field.Type() == uuidType {
		id, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid UUID: %s", value)
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %s", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}
		// multi-component values: "2024/q1" → ["2024", "q1"]
		var parts []string
		if value != "" {
			parts = strings.Split(value, "/")
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}
	return nil
}
