package resolvers

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

func intToBoolHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			return int(v) != 0, nil
		}
		return data, nil
	}
}

func timeToStringHook() mapstructure.DecodeHookFunc {
	timeType := reflect.TypeOf(time.Time{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f != timeType || t.Kind() != reflect.String {
			return data, nil
		}
		return data.(time.Time).Format(time.RFC3339), nil
	}
}

var rowDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	intToBoolHook(),
	timeToStringHook(),
)

// decodeRow maps a flat DB row (column name keyed) onto a GraphQL model.
func decodeRow(row map[string]interface{}, out interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rowDecodeHook,
		Result:           out,
		TagName:          "mapstructure",
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return dec.Decode(row)
}
