package immojump

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immojumphq/immojump-connect/pkg/core"
	"github.com/immojumphq/immojump-connect/test/support/contexts"
)

func executionContext(config map[string]any, httpContext *contexts.HTTPContext, state *contexts.ExecutionStateContext) core.ExecutionContext {
	return core.ExecutionContext{
		Logger:        contexts.Logger(),
		Configuration: config,
		HTTP:          httpContext,
		Integration: &contexts.IntegrationContext{
			Configuration: map[string]any{
				"baseUrl": "https://app.immojump.test",
				"token":   "token-123",
			},
		},
		Metadata:       &contexts.MetadataContext{},
		ExecutionState: state,
	}
}

func Test__Property__Execute(t *testing.T) {
	component := &Property{}

	t.Run("update sends only the present fields and emits the response", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 200, map[string]any{"id": "im-1", "status": "Geplant"})},
		}
		state := &contexts.ExecutionStateContext{}

		err := component.Execute(executionContext(map[string]any{
			"operation":    "update",
			"immobilieId":  "im-1",
			"updateFields": map[string]any{"daten": map[string]any{"status": "Geplant"}},
		}, httpContext, state))

		require.NoError(t, err)

		request := httpContext.Requests[0]
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, map[string]any{"daten": map[string]any{"status": "Geplant"}}, requestBody(t, request))

		assert.True(t, state.Passed)
		assert.Equal(t, core.DefaultOutputChannel.Name, state.Channel)
		assert.Equal(t, "immojump.property.update", state.Type)
		require.Len(t, state.Payloads, 1)
	})

	t.Run("delete emits a success marker", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{Responses: []*http.Response{httpResponse(204, "")}}
		state := &contexts.ExecutionStateContext{}

		err := component.Execute(executionContext(map[string]any{
			"operation":   "delete",
			"immobilieId": "im-1",
		}, httpContext, state))

		require.NoError(t, err)
		require.Len(t, state.Payloads, 1)
		assert.Equal(t, map[string]any{"success": true}, state.Payloads[0])
	})

	t.Run("getAll collects all pages into one emission", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 200, items("im-1", "im-2"))},
		}
		state := &contexts.ExecutionStateContext{}

		err := component.Execute(executionContext(map[string]any{
			"operation": "getAll",
			"limit":     10,
		}, httpContext, state))

		require.NoError(t, err)
		assert.Len(t, state.Payloads, 2)
		assert.Equal(t, "immojump.property.getAll", state.Type)
	})

	t.Run("operation is required", func(t *testing.T) {
		state := &contexts.ExecutionStateContext{}
		err := component.Execute(executionContext(map[string]any{}, &contexts.HTTPContext{}, state))

		require.ErrorContains(t, err, "operation is required")
		assert.False(t, state.Finished)
	})

	t.Run("API errors fail the execution", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 404, map[string]any{"message": "not found"})},
		}
		state := &contexts.ExecutionStateContext{}

		err := component.Execute(executionContext(map[string]any{
			"operation":   "get",
			"immobilieId": "im-1",
		}, httpContext, state))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
	})
}

func Test__Feed__Execute(t *testing.T) {
	component := &Feed{}
	httpContext := &contexts.HTTPContext{
		Responses: []*http.Response{jsonResponse(t, 201, map[string]any{"id": "post-1"})},
	}
	state := &contexts.ExecutionStateContext{}

	err := component.Execute(executionContext(map[string]any{
		"operation": "post",
		"title":     "Update",
		"message":   "New listing online",
		"channelId": "ch-1",
	}, httpContext, state))

	require.NoError(t, err)

	body := requestBody(t, httpContext.Requests[0])
	assert.Equal(t, "Update", body["title"])
	assert.Equal(t, "ch-1", body["channel_id"])
	assert.Equal(t, "immojump.feed.post", state.Type)
}

func Test__SendTestEvent__Execute(t *testing.T) {
	component := &SendTestEvent{}
	httpContext := &contexts.HTTPContext{
		Responses: []*http.Response{jsonResponse(t, 202, map[string]any{"delivered": true})},
	}
	state := &contexts.ExecutionStateContext{}

	err := component.Execute(executionContext(map[string]any{
		"operation":  "sendTestEvent",
		"objectType": "immobilie",
		"objectId":   "im-1",
	}, httpContext, state))

	require.NoError(t, err)
	assert.Equal(t, "/api/integrations/test-event", httpContext.Requests[0].URL.Path)
	assert.Equal(t, "immojump.integration-event.sendTestEvent", state.Type)
}

func Test__Contact__Execute(t *testing.T) {
	component := &Contact{}
	httpContext := &contexts.HTTPContext{
		Responses: []*http.Response{jsonResponse(t, 201, map[string]any{"id": "c-1"})},
	}
	state := &contexts.ExecutionStateContext{}

	err := component.Execute(executionContext(map[string]any{
		"operation": "create",
		"firstName": "Max",
		"lastName":  "Muster",
	}, httpContext, state))

	require.NoError(t, err)
	body := requestBody(t, httpContext.Requests[0])
	assert.Equal(t, "Max", body["first_name"])
	assert.Equal(t, "Muster", body["last_name"])
}
