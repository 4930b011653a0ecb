package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsri/healthlake-mcp/conf"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal int
		want       int
	}{
		{"valid int", "250", 10, 250},
		{"not a number", "abc", 10, 10},
		{"unset", "", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "TEST_HLMCP_UTILS_INT"
			if tt.value != "" {
				require.NoError(t, conf.SetEnv(t, key, tt.value))
				defer func() { _ = conf.UnsetEnv(t, key) }()
			}
			assert.Equal(t, tt.want, GetEnvInt(key, tt.defaultVal))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"true", "true", false, true},
		{"mixed case handled by ParseBool", "TRUE", false, true},
		{"garbage", "yep", false, false},
		{"unset", "", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "TEST_HLMCP_UTILS_BOOL"
			if tt.value != "" {
				require.NoError(t, conf.SetEnv(t, key, tt.value))
				defer func() { _ = conf.UnsetEnv(t, key) }()
			}
			assert.Equal(t, tt.want, GetEnvBool(key, tt.defaultVal))
		})
	}
}
