package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/wayfarer/spec"
)

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	want := map[string][]string{
		"/healthz":                 {"get"},
		"/places":                  {"get"},
		"/places/{placeId}":        {"get"},
		"/places/{placeId}/hours":  {"get"},
		"/places/{placeId}/visits": {"post"},
		"/tags":                    {"get"},
		"/plans":                   {"post"},
		"/plans/{planId}":          {"get", "delete"},
		"/plans/{planId}/export":   {"get"},
		"/metrics":                 {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}
}
