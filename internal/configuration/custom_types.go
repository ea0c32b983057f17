package configuration

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		curvePointHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// curvePointHookFunc returns a mapstructure decode hook that accepts the
// compact two-element list form for curve control points:
//
//	points: [[0, 0.0], [50, 0.3], [100, 0.8]]
//
// in addition to the explicit mapping form ({input: ..., duty: ...}).
func curvePointHookFunc() mapstructure.DecodeHookFuncType {
	curvePointType := reflect.TypeOf(CurvePoint{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != curvePointType {
			return data, nil
		}

		pair, ok := data.([]interface{})
		if !ok {
			return data, nil
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("curve point must be an [input, duty] pair, got %d elements", len(pair))
		}

		input, err := cast.ToFloat64E(pair[0])
		if err != nil {
			return nil, fmt.Errorf("curve point input: %v", err)
		}
		duty, err := cast.ToFloat64E(pair[1])
		if err != nil {
			return nil, fmt.Errorf("curve point duty: %v", err)
		}

		return map[string]interface{}{
			"input": input,
			"duty":  duty,
		}, nil
	}
}
