package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Path fills fields tagged `path:"name"` from route parameters looked up with
// extractor, typically chi.URLParam. Supported kinds are string, int and bool.
//
//	type DismissRequest struct {
//		ID string `path:"id"`
//	}
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field, sf := rv.Field(i), rt.Field(i)
			name := sf.Tag.Get("path")
			if name == "" || name == "-" || !field.CanSet() {
				continue
			}

			raw := extractor(r, name)
			if raw == "" {
				continue
			}
			if err := setValue(field, raw); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, sf.Name, err)
			}
		}
		return nil
	}
}

func setValue(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
