package immojump

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestClient(t *testing.T, organisationID string) *Client {
	config := map[string]any{
		"baseUrl": "https://app.immojump.test",
		"token":   "token-123",
	}
	if organisationID != "" {
		config["organisationId"] = organisationID
	}

	client, _ := testClient(t, config)
	return client
}

func Test__BuildRequest__Property(t *testing.T) {
	client := buildTestClient(t, "org-1")

	t.Run("get requires the property id", func(t *testing.T) {
		_, err := BuildRequest(client, "property", "get", map[string]any{})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "immobilieId is required", validationErr.Message)
	})

	t.Run("get interpolates and escapes the property id", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "get", map[string]any{"immobilieId": "a/b"})

		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, spec.Method)
		assert.Equal(t, "/api/v2/immobilien/a%2Fb", spec.Path)
	})

	t.Run("create sends type, data and organisation id", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "create", map[string]any{
			"type":  "ETW",
			"daten": `{"titel": "Musterwohnung"}`,
		})

		require.NoError(t, err)
		body, ok := spec.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ETW", body["type"])
		assert.Equal(t, map[string]any{"titel": "Musterwohnung"}, body["daten"])
		assert.Equal(t, "org-1", body["organisation_id"])
	})

	t.Run("create with invalid JSON data -> validation error", func(t *testing.T) {
		_, err := BuildRequest(client, "property", "create", map[string]any{
			"type":  "ETW",
			"daten": "{not json",
		})

		require.ErrorContains(t, err, "daten must be valid JSON")
	})

	t.Run("update sends only present fields", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "update", map[string]any{
			"immobilieId":  "im-1",
			"updateFields": map[string]any{"status": "Geplant"},
		})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, spec.Method)
		assert.Equal(t, map[string]any{"status": "Geplant"}, spec.Body)
	})

	t.Run("updateStatus coerces numeric status ids", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "updateStatus", map[string]any{
			"immobilieId": "im-1",
			"statusId":    "7",
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/statuses/immobilien/im-1/status", spec.Path)
		assert.Equal(t, map[string]any{"status_id": 7}, spec.Body)
	})

	t.Run("setTags sends the raw tag list", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "setTags", map[string]any{
			"immobilieId": "im-1",
			"tagIds":      []any{"tag-1", "tag-2"},
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/immobilie/im-1/tags", spec.Path)
		assert.Equal(t, []any{"tag-1", "tag-2"}, spec.Body)
	})

	t.Run("setTags with no tags sends an empty list", func(t *testing.T) {
		spec, err := BuildRequest(client, "property", "setTags", map[string]any{"immobilieId": "im-1"})

		require.NoError(t, err)
		assert.Equal(t, []any{}, spec.Body)
	})
}

func Test__BuildRequest__Contact(t *testing.T) {
	client := buildTestClient(t, "org-1")

	t.Run("create requires first and last name", func(t *testing.T) {
		_, err := BuildRequest(client, "contact", "create", map[string]any{"firstName": "Max"})
		require.ErrorContains(t, err, "lastName is required")
	})

	t.Run("create includes non-empty optional fields only", func(t *testing.T) {
		spec, err := BuildRequest(client, "contact", "create", map[string]any{
			"firstName": "Max",
			"lastName":  "Muster",
			"additionalFields": map[string]any{
				"email": "max@example.com",
				"phone": "",
			},
		})

		require.NoError(t, err)
		body, ok := spec.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Max", body["first_name"])
		assert.Equal(t, "max@example.com", body["email"])
		assert.NotContains(t, body, "phone")
		assert.Equal(t, "org-1", body["organisation_id"])
	})

	t.Run("update sends exactly the present fields", func(t *testing.T) {
		spec, err := BuildRequest(client, "contact", "update", map[string]any{
			"contactId":    "c-1",
			"updateFields": map[string]any{"email": "new@example.com"},
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"email": "new@example.com"}, spec.Body)
	})

	t.Run("list query includes filters and organisation id", func(t *testing.T) {
		spec, err := BuildRequest(client, "contact", "getAll", map[string]any{
			"search": "Muster",
			"sort":   "last_name",
			"order":  "desc",
		})

		require.NoError(t, err)
		assert.Equal(t, "org-1", spec.Query.Get("organisation_id"))
		assert.Equal(t, "Muster", spec.Query.Get("q"))
		assert.Equal(t, "last_name", spec.Query.Get("sort"))
		assert.Equal(t, "desc", spec.Query.Get("order"))
	})
}

func Test__BuildRequest__Activity(t *testing.T) {
	client := buildTestClient(t, "")

	t.Run("list query drops the all sentinel", func(t *testing.T) {
		spec, err := BuildRequest(client, "activity", "getAll", map[string]any{
			"typeFilter":     "all",
			"statusFilter":   "open",
			"priorityFilter": "",
		})

		require.NoError(t, err)
		assert.False(t, spec.Query.Has("type"))
		assert.Equal(t, "open", spec.Query.Get("status"))
		assert.False(t, spec.Query.Has("priority"))
	})

	t.Run("create without property uses the flat path", func(t *testing.T) {
		spec, err := BuildRequest(client, "activity", "create", map[string]any{
			"title":    "Besichtigung",
			"type":     "viewing",
			"status":   "open",
			"priority": "high",
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/activities/activities", spec.Path)
	})

	t.Run("create with property nests under the property", func(t *testing.T) {
		spec, err := BuildRequest(client, "activity", "create", map[string]any{
			"title":        "Besichtigung",
			"type":         "viewing",
			"status":       "open",
			"priority":     "high",
			"immobilienId": "im-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/activities/activities/immobilie/im-1", spec.Path)
	})

	t.Run("create requires title, type, status and priority", func(t *testing.T) {
		_, err := BuildRequest(client, "activity", "create", map[string]any{
			"title": "Besichtigung",
			"type":  "viewing",
		})

		require.ErrorContains(t, err, "status is required")
	})

	t.Run("create parses contact ids from JSON", func(t *testing.T) {
		spec, err := BuildRequest(client, "activity", "create", map[string]any{
			"title":    "Besichtigung",
			"type":     "viewing",
			"status":   "open",
			"priority": "high",
			"additionalFields": map[string]any{
				"contactIds": `["c-1", "c-2"]`,
			},
		})

		require.NoError(t, err)
		body, ok := spec.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"c-1", "c-2"}, body["contact_ids"])
	})

	t.Run("create rejects non-array contact ids", func(t *testing.T) {
		_, err := BuildRequest(client, "activity", "create", map[string]any{
			"title":    "Besichtigung",
			"type":     "viewing",
			"status":   "open",
			"priority": "high",
			"additionalFields": map[string]any{
				"contactIds": `{"id": "c-1"}`,
			},
		})

		require.ErrorContains(t, err, "contactIds must be an array")
	})

	t.Run("update sends exactly the present fields", func(t *testing.T) {
		spec, err := BuildRequest(client, "activity", "update", map[string]any{
			"activityId":   "a-1",
			"updateFields": map[string]any{"status": "done"},
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "done"}, spec.Body)
	})
}

func Test__BuildRequest__Feed(t *testing.T) {
	client := buildTestClient(t, "")

	t.Run("post requires title and message", func(t *testing.T) {
		_, err := BuildRequest(client, "feed", "post", map[string]any{"title": "Update"})
		require.ErrorContains(t, err, "message is required")
	})

	t.Run("channel id is only sent when set", func(t *testing.T) {
		spec, err := BuildRequest(client, "feed", "post", map[string]any{
			"title":   "Update",
			"message": "New listing online",
		})

		require.NoError(t, err)
		body, ok := spec.Body.(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, body, "channel_id")
	})
}

func Test__BuildRequest__TestEvent(t *testing.T) {
	client := buildTestClient(t, "")

	t.Run("builds the event payload", func(t *testing.T) {
		spec, err := BuildRequest(client, "integration-event", "sendTestEvent", map[string]any{
			"objectType": "immobilie",
			"objectId":   "im-1",
			"payload":    `{"status": "Geplant"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/integrations/test-event", spec.Path)
		assert.Equal(t, map[string]any{
			"object_type": "immobilie",
			"object_id":   "im-1",
			"payload":     map[string]any{"status": "Geplant"},
		}, spec.Body)
	})

	t.Run("payload defaults to an empty object", func(t *testing.T) {
		spec, err := BuildRequest(client, "integration-event", "sendTestEvent", map[string]any{
			"objectType": "immobilie",
			"objectId":   "im-1",
		})

		require.NoError(t, err)
		body, ok := spec.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{}, body["payload"])
	})
}

func Test__BuildRequest__UnknownOperations(t *testing.T) {
	client := buildTestClient(t, "")

	_, err := BuildRequest(client, "property", "merge", map[string]any{})
	require.ErrorContains(t, err, "unknown operation merge")

	_, err = BuildRequest(client, "listing", "get", map[string]any{})
	require.ErrorContains(t, err, "unknown resource listing")
}
