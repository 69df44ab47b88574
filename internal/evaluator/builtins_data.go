package evaluator

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

func (r *Registry) registerData() {
	r.register("parseJson", 1, false, builtinParseJson)
	r.register("toJson", 1, false, builtinToJson)
	r.register("parseYaml", 1, false, builtinParseYaml)
	r.register("toYaml", 1, false, builtinToYaml)
}

func builtinParseJson(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("parseJson", args, 1); err != nil {
		return nil, err
	}
	text, err := argString("parseJson", args, 0)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, callErrorf("parseJson: %v", err)
	}
	return fromNative(decoded)
}

func builtinToJson(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toJson", args, 1); err != nil {
		return nil, err
	}
	native, err := toNative(args[0])
	if err != nil {
		return nil, callErrorf("toJson: %v", err)
	}
	data, err := json.Marshal(native)
	if err != nil {
		return nil, callErrorf("toJson: %v", err)
	}
	return &String{Value: string(data)}, nil
}

func builtinParseYaml(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("parseYaml", args, 1); err != nil {
		return nil, err
	}
	text, err := argString("parseYaml", args, 0)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := yaml.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, callErrorf("parseYaml: %v", err)
	}
	return fromNative(decoded)
}

func builtinToYaml(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toYaml", args, 1); err != nil {
		return nil, err
	}
	native, err := toNative(args[0])
	if err != nil {
		return nil, callErrorf("toYaml: %v", err)
	}
	data, err := yaml.Marshal(native)
	if err != nil {
		return nil, callErrorf("toYaml: %v", err)
	}
	return &String{Value: string(data)}, nil
}

// fromNative converts a decoded JSON/YAML value into a runtime object.
// YAML maps may carry non-string keys; they are stringified.
func fromNative(v interface{}) (Object, error) {
	switch value := v.(type) {
	case nil:
		return NULL, nil
	case bool:
		return nativeBool(value), nil
	case float64:
		return &Number{Value: value}, nil
	case int:
		return &Number{Value: float64(value)}, nil
	case int64:
		return &Number{Value: float64(value)}, nil
	case string:
		return &String{Value: value}, nil
	case []interface{}:
		elements := make([]Object, len(value))
		for i, elem := range value {
			converted, err := fromNative(elem)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return &Array{Elements: elements}, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObjectValue()
		for _, k := range keys {
			converted, err := fromNative(value[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, converted)
		}
		return obj, nil
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(value))
		for k, elem := range value {
			converted[fmt.Sprint(k)] = elem
		}
		return fromNative(converted)
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}

// toNative converts a runtime object into the JSON-compatible form
// used by encoders. Tagged values encode as {type, value} objects.
func toNative(o Object) (interface{}, error) {
	switch value := o.(type) {
	case *Null:
		return nil, nil
	case *Boolean:
		return value.Value, nil
	case *Number:
		if value.Value == float64(int64(value.Value)) {
			return int64(value.Value), nil
		}
		return value.Value, nil
	case *String:
		return value.Value, nil
	case *Array:
		elements := make([]interface{}, len(value.Elements))
		for i, elem := range value.Elements {
			converted, err := toNative(elem)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return elements, nil
	case *ObjectValue:
		obj := make(map[string]interface{}, len(value.Pairs))
		for k, elem := range value.Pairs {
			converted, err := toNative(elem)
			if err != nil {
				return nil, err
			}
			obj[k] = converted
		}
		return obj, nil
	case *Tagged:
		payload, err := toNative(value.Value)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": value.Tag, "value": payload}, nil
	}
	return nil, fmt.Errorf("cannot encode %s", o.Type())
}
