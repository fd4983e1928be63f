package config

import "fmt"

// Field dispatch tables give updates and overlays a closed set of
// recognized identifiers, so a typo fails instead of silently succeeding.

var modelFields = map[string]func(*ModelConfig, interface{}) error{
	"name":           func(m *ModelConfig, v interface{}) error { return setString(&m.Name, v) },
	"base_url":       func(m *ModelConfig, v interface{}) error { return setString(&m.BaseURL, v) },
	"api_key":        func(m *ModelConfig, v interface{}) error { return setString(&m.APIKey, v) },
	"model":          func(m *ModelConfig, v interface{}) error { return setString(&m.Model, v) },
	"details":        func(m *ModelConfig, v interface{}) error { return setString(&m.Details, v) },
	"max_tokens":     func(m *ModelConfig, v interface{}) error { return setInt(&m.MaxTokens, v) },
	"temperature":    func(m *ModelConfig, v interface{}) error { return setFloat(&m.Temperature, v) },
	"timeout":        func(m *ModelConfig, v interface{}) error { return setInt(&m.Timeout, v) },
	"retries":        func(m *ModelConfig, v interface{}) error { return setInt(&m.Retries, v) },
	"enabled":        func(m *ModelConfig, v interface{}) error { return setBool(&m.Enabled, v) },
	"cost_per_token": func(m *ModelConfig, v interface{}) error { return setFloat(&m.CostPerToken, v) },
	"capabilities":   func(m *ModelConfig, v interface{}) error { return setStrings(&m.Capabilities, v) },
}

var securityFields = map[string]func(*SecurityConfig, interface{}) error{
	"api_key_encryption":       func(c *SecurityConfig, v interface{}) error { return setBool(&c.APIKeyEncryption, v) },
	"sandbox_isolation":        func(c *SecurityConfig, v interface{}) error { return setBool(&c.SandboxIsolation, v) },
	"command_validation":       func(c *SecurityConfig, v interface{}) error { return setBool(&c.CommandValidation, v) },
	"file_access_restrictions": func(c *SecurityConfig, v interface{}) error { return setBool(&c.FileAccessRestrictions, v) },
	"network_restrictions":     func(c *SecurityConfig, v interface{}) error { return setBool(&c.NetworkRestrictions, v) },
	"max_request_size_mb":      func(c *SecurityConfig, v interface{}) error { return setInt(&c.MaxRequestSizeMB, v) },
}

func setString(dst *string, v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", v)
	}
	*dst = s
	return nil
}

func setInt(dst *int, v interface{}) error {
	switch val := v.(type) {
	case int:
		*dst = val
	case int64:
		*dst = int(val)
	case float64:
		if val != float64(int(val)) {
			return fmt.Errorf("expected integer, got %v", val)
		}
		*dst = int(val)
	default:
		return fmt.Errorf("expected integer, got %T", v)
	}
	return nil
}

func setFloat(dst *float64, v interface{}) error {
	switch val := v.(type) {
	case float64:
		*dst = val
	case int:
		*dst = float64(val)
	case int64:
		*dst = float64(val)
	default:
		return fmt.Errorf("expected number, got %T", v)
	}
	return nil
}

func setBool(dst *bool, v interface{}) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", v)
	}
	*dst = b
	return nil
}

func setStrings(dst *[]string, v interface{}) error {
	switch val := v.(type) {
	case []string:
		*dst = val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string list, got %T element", item)
			}
			out = append(out, s)
		}
		*dst = out
	default:
		return fmt.Errorf("expected string list, got %T", v)
	}
	return nil
}
