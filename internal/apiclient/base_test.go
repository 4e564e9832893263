package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "unset", raw: "", want: "/api"},
		{name: "whitespace only", raw: "   ", want: "/api"},
		{name: "only slash", raw: "/", want: "/api"},
		{name: "host with trailing slash", raw: "https://host/", want: "https://host/api"},
		{name: "host without slash", raw: "https://host", want: "https://host/api"},
		{name: "many trailing slashes", raw: "https://host///", want: "https://host/api"},
		{name: "already has prefix", raw: "https://host/api", want: "https://host/api"},
		{name: "prefix with trailing slash", raw: "https://host/api/", want: "https://host/api"},
		{name: "padded value", raw: "  https://host  ", want: "https://host/api"},
		{name: "nested path", raw: "https://host/admin", want: "https://host/admin/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseURL(tt.raw))
			// детерминированность
			assert.Equal(t, ResolveBaseURL(tt.raw), ResolveBaseURL(tt.raw))
		})
	}
}

func TestAbsoluteBase(t *testing.T) {
	got, err := absoluteBase("/api", "https://console.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://console.example.com/api", got)

	got, err = absoluteBase("https://host/api", "")
	require.NoError(t, err)
	assert.Equal(t, "https://host/api", got)

	_, err = absoluteBase("/api", "")
	assert.Error(t, err)

	_, err = absoluteBase("/api", "not a url")
	assert.Error(t, err)
}
