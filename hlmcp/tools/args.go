package tools

import (
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"

	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

// Argument coercion for MCP call arguments. Arguments arrive as decoded JSON,
// so numbers are float64 and objects are map[string]interface{}.

func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := req.RequireString(key)
	if err != nil || v == "" {
		return "", &customErrors.ValidationError{Err: err, Msg: fmt.Sprintf("missing required argument %q", key)}
	}
	return v, nil
}

func optString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func optInt64(args map[string]interface{}, key string) *int64 {
	switch v := args[key].(type) {
	case float64:
		i := int64(v)
		return &i
	case int:
		i := int64(v)
		return &i
	case int64:
		return &v
	}
	return nil
}

func optObject(args map[string]interface{}, key string) map[string]interface{} {
	if v, ok := args[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func requireObject(args map[string]interface{}, key string) (map[string]interface{}, error) {
	v := optObject(args, key)
	if v == nil {
		return nil, &customErrors.ValidationError{Msg: fmt.Sprintf("missing required argument %q", key)}
	}
	return v, nil
}

func optList(args map[string]interface{}, key string) []interface{} {
	if v, ok := args[key].([]interface{}); ok {
		return v
	}
	return nil
}

func optStringSlice(args map[string]interface{}, key string) []string {
	var out []string
	for _, item := range optList(args, key) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// optTime accepts RFC3339 timestamps and plain dates.
func optTime(args map[string]interface{}, key string) (*time.Time, error) {
	v := optString(args, key)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, &customErrors.ValidationError{Msg: fmt.Sprintf("argument %q is not a valid timestamp: %s", key, v)}
}

// decodeObject maps a caller-supplied configuration map onto an SDK input
// struct. Field matching is case-insensitive, so both AWS-shaped (KmsKeyId)
// and lowercase keys decode.
func decodeObject(m map[string]interface{}, out interface{}, key string) error {
	if err := mapstructure.Decode(m, out); err != nil {
		return &customErrors.ValidationError{Err: err, Msg: fmt.Sprintf("argument %q has an unexpected shape", key)}
	}
	return nil
}

// toQueryValues renders a parameter object into URL query values. Non-string
// values are formatted, matching how search parameters arrive from hosts that
// send numbers for _count and friends.
func toQueryValues(m map[string]interface{}) url.Values {
	if len(m) == 0 {
		return nil
	}
	vals := url.Values{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := m[k].(type) {
		case []interface{}:
			for _, item := range v {
				vals.Add(k, fmt.Sprint(item))
			}
		case float64:
			vals.Add(k, formatNumber(v))
		default:
			vals.Add(k, fmt.Sprint(v))
		}
	}
	return vals
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(f)
}
