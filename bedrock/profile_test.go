package bedrock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRegionPrefix(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		expected string
	}{
		{"us east", "us-east-1", "us"},
		{"us west", "us-west-2", "us"},
		{"canada routes to us", "ca-central-1", "us"},
		{"south america routes to us", "sa-east-1", "us"},
		{"eu west", "eu-west-1", "eu"},
		{"eu central", "eu-central-1", "eu"},
		{"apac", "ap-southeast-1", "apac"},
		{"japan prefers jp", "ap-northeast-1", "jp"},
		{"australia prefers au", "ap-southeast-2", "au"},
		{"gov east", "us-gov-east-1", "us-gov"},
		{"gov west", "us-gov-west-1", "us-gov"},
		{"unknown region", "mars-north-1", ""},
		{"empty region", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, getRegionPrefix(tt.region))
		})
	}
}

func TestConvertModelID2CrossRegionProfile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		model    string
		region   string
		expected string
	}{
		{
			name:     "nova 2 lite in us-east-1",
			model:    "amazon.nova-2-lite-v1:0",
			region:   "us-east-1",
			expected: "us.amazon.nova-2-lite-v1:0",
		},
		{
			name:     "nova 2 omni in us-east-1",
			model:    "amazon.nova-2-omni-v1:0",
			region:   "us-east-1",
			expected: "us.amazon.nova-2-omni-v1:0",
		},
		{
			name:     "nova 2 lite in eu-central-1",
			model:    "amazon.nova-2-lite-v1:0",
			region:   "eu-central-1",
			expected: "eu.amazon.nova-2-lite-v1:0",
		},
		{
			name:     "japan falls back to apac",
			model:    "amazon.nova-2-lite-v1:0",
			region:   "ap-northeast-1",
			expected: "apac.amazon.nova-2-lite-v1:0",
		},
		{
			name:     "nova canvas is not cross-region eligible",
			model:    "amazon.nova-canvas-v1:0",
			region:   "us-east-1",
			expected: "amazon.nova-canvas-v1:0",
		},
		{
			name:     "omni has no eu profile",
			model:    "amazon.nova-2-omni-v1:0",
			region:   "eu-west-1",
			expected: "amazon.nova-2-omni-v1:0",
		},
		{
			name:     "unknown region returns original",
			model:    "amazon.nova-2-lite-v1:0",
			region:   "mars-north-1",
			expected: "amazon.nova-2-lite-v1:0",
		},
		{
			name:     "unknown model returns original",
			model:    "vendor.mystery-model-v9",
			region:   "us-east-1",
			expected: "vendor.mystery-model-v9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertModelID2CrossRegionProfile(ctx, tt.model, tt.region)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestRegionMappingValidation(t *testing.T) {
	validPrefixes := map[string]bool{
		"us":     true,
		"us-gov": true,
		"eu":     true,
		"apac":   true,
		"jp":     true,
		"au":     true,
	}

	for region, prefixes := range RegionMapping {
		require.NotEmpty(t, prefixes, "region %s has no prefixes", region)
		for _, prefix := range prefixes {
			require.True(t, validPrefixes[prefix],
				"region %s carries unknown prefix %s", region, prefix)
		}
	}
}

func TestCrossRegionInferencesValidation(t *testing.T) {
	validPrefixes := map[string]bool{
		"us":     true,
		"us-gov": true,
		"eu":     true,
		"apac":   true,
		"jp":     true,
		"au":     true,
	}

	for _, profile := range CrossRegionInferences {
		prefix, model, found := strings.Cut(profile, ".")
		require.True(t, found, "profile %s has no prefix", profile)
		require.True(t, validPrefixes[prefix], "profile %s carries unknown prefix %s", profile, prefix)
		require.NotEmpty(t, model, "profile %s has empty model", profile)
	}
}

func BenchmarkGetRegionPrefix(b *testing.B) {
	for b.Loop() {
		getRegionPrefix("ap-northeast-1")
	}
}

func BenchmarkConvertModelID2CrossRegionProfile(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		ConvertModelID2CrossRegionProfile(ctx, "amazon.nova-2-lite-v1:0", "us-east-1")
	}
}
