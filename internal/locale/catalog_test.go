package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogContains(t *testing.T) {
	c := NewCatalog()

	assert.True(t, c.Contains("en-US"))
	assert.True(t, c.Contains("en-us"), "lookup is case insensitive")
	assert.True(t, c.Contains("ja-JP"))
	assert.False(t, c.Contains("zz-ZZ"))
	assert.False(t, c.Contains(""))
}

func TestCatalogCanonical(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		in, want string
	}{
		{"en-US", "en-US"},
		{"en-us", "en-US"},
		{"EN-US", "en-US"},
		{"de-de", "de-DE"},
	}
	for _, tt := range tests {
		got, ok := c.Canonical(tt.in)
		require.True(t, ok, "expected %q to resolve", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, ok := c.Canonical("zz-ZZ")
	assert.False(t, ok)
}

func TestCatalogSize(t *testing.T) {
	c := NewCatalog()
	assert.Greater(t, c.Len(), 200, "embedded culture list should cover the full set")
}
