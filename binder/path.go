package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Path binds URL parameters into string and integer fields tagged with
// `path:"name"`, using extractor to read them (chi.URLParam with chi).
// Fields without a tag or tagged `path:"-"` are skipped.
//
//	type GetUserRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/{id}", handler.Wrap(getUser,
//		handler.WithBinders[handler.Context, GetUserRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidPath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)

			name := sf.Tag.Get("path")
			if name == "" || name == "-" || !field.CanSet() {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}

			if err := setField(field, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, sf.Name, err)
			}
		}
		return nil
	}
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
