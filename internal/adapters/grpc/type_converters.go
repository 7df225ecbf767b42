package grpc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// Conversion helpers for the domain <-> protobuf Struct boundary

// ToStruct converts a response or event into a protobuf Struct via its JSON form
func ToStruct(v interface{}) (*structpb.Struct, error) {
	fields, err := toMap(v)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

func toMap(v interface{}) (map[string]interface{}, error) {
	if m, ok := v.(map[string]interface{}); ok {
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode %T as an object: %w", v, err)
	}
	return fields, nil
}

// DecodeResult fills out, a pointer to a response type, from a result map
func DecodeResult(result map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func stringArg(args map[string]interface{}, key string) (string, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch s := v.(type) {
	case string:
		return s, true, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true, nil
	}
	return "", false, fmt.Errorf("%w: %s must be a string", daemon.ErrInvalidArguments, key)
}

func intArg(args map[string]interface{}, key string) (int, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false, fmt.Errorf("%w: %s must be a whole number", daemon.ErrInvalidArguments, key)
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s must be a number", daemon.ErrInvalidArguments, key)
		}
		return i, true, nil
	}
	return 0, false, fmt.Errorf("%w: %s must be a number", daemon.ErrInvalidArguments, key)
}

func boolArg(args map[string]interface{}, key string) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%w: %s must be true or false", daemon.ErrInvalidArguments, key)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false", daemon.ErrInvalidArguments, key)
}
