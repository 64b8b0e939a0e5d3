package immojump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immojumphq/immojump-connect/test/support/contexts"
)

func Test__LoadOptions__Statuses(t *testing.T) {
	t.Run("maps statuses to options with stringified ids", func(t *testing.T) {
		client, httpContext := testClient(t, nil, jsonResponse(t, 200, []any{
			map[string]any{"id": 1, "name": "Akquise"},
			map[string]any{"id": 2, "name": "Geplant"},
		}))

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeStatus)
		require.NoError(t, err)

		assert.Equal(t, "/api/statuses/statuses", httpContext.Requests[0].URL.Path)
		require.Len(t, options, 2)
		assert.Equal(t, "Akquise", options[0].Name)
		assert.Equal(t, "1", options[0].ID)
	})

	t.Run("falls back to a generated label without a name", func(t *testing.T) {
		client, _ := testClient(t, nil, jsonResponse(t, 200, []any{
			map[string]any{"id": 7},
		}))

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeStatus)
		require.NoError(t, err)

		require.Len(t, options, 1)
		assert.Equal(t, "Status 7", options[0].Name)
	})

	t.Run("unexpected response shape -> empty options", func(t *testing.T) {
		client, _ := testClient(t, nil, jsonResponse(t, 200, map[string]any{"message": "nope"}))

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeStatus)
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("API failure -> diagnostic placeholder entries", func(t *testing.T) {
		client, _ := testClient(t, nil, jsonResponse(t, 500, map[string]any{"message": "boom"}))

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeStatus)
		require.NoError(t, err)

		require.Len(t, options, 2)
		assert.Equal(t, "Debug: API Error", options[0].Name)
		assert.Equal(t, "error", options[0].ID)
		assert.Equal(t, "debug", options[1].ID)
	})
}

func Test__LoadOptions__Tags(t *testing.T) {
	t.Run("fetches tags for the configured organisation", func(t *testing.T) {
		client, httpContext := testClient(t, map[string]any{
			"baseUrl":        "https://app.immojump.test",
			"token":          "token-123",
			"organisationId": "org-1",
		}, jsonResponse(t, 200, []any{
			map[string]any{"id": "tag-1", "name": "Neubau"},
		}))

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeTag)
		require.NoError(t, err)

		assert.Equal(t, "/api/org-1/tags", httpContext.Requests[0].URL.Path)
		require.Len(t, options, 1)
		assert.Equal(t, "Neubau", options[0].Name)
	})

	t.Run("missing organisation -> single placeholder, no request", func(t *testing.T) {
		client, httpContext := testClient(t, nil)

		options, err := loadOptions(contexts.Logger(), client, ResourceTypeTag)
		require.NoError(t, err)

		require.Len(t, options, 1)
		assert.Equal(t, "Debug: Missing organisation", options[0].Name)
		assert.Equal(t, "missing_org", options[0].ID)
		assert.Empty(t, httpContext.Requests)
	})
}

func Test__LoadOptions__Channels(t *testing.T) {
	client, httpContext := testClient(t, nil, jsonResponse(t, 200, []any{
		map[string]any{"id": "ch-1", "name": "Vertrieb"},
	}))

	options, err := loadOptions(contexts.Logger(), client, ResourceTypeChannel)
	require.NoError(t, err)

	assert.Equal(t, "/api/organisation-feed/channels", httpContext.Requests[0].URL.Path)
	require.Len(t, options, 1)
	assert.Equal(t, "ch-1", options[0].ID)
}

func Test__LoadOptions__UnknownType(t *testing.T) {
	client, _ := testClient(t, nil)

	_, err := loadOptions(contexts.Logger(), client, "workspace")
	require.ErrorContains(t, err, "unknown resource type")
}
