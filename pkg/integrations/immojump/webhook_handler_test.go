package immojump

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immojumphq/immojump-connect/pkg/core"
	"github.com/immojumphq/immojump-connect/test/support/contexts"
)

func handlerContext(webhook *contexts.WebhookConfigContext, httpContext *contexts.HTTPContext) core.WebhookHandlerContext {
	return core.WebhookHandlerContext{
		Logger: contexts.Logger(),
		HTTP:   httpContext,
		Integration: &contexts.IntegrationContext{
			Configuration: map[string]any{
				"baseUrl": "https://app.immojump.test",
				"token":   "token-123",
			},
		},
		Webhook: webhook,
	}
}

func Test__WebhookHandler__CompareConfig(t *testing.T) {
	handler := &ImmoJumpWebhookHandler{}

	t.Run("existing superset serves the request", func(t *testing.T) {
		match, err := handler.CompareConfig(
			WebhookConfiguration{EventTypes: []string{EventPropertyCreated, EventPropertyTagAdded}},
			WebhookConfiguration{EventTypes: []string{EventPropertyCreated}},
		)

		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("missing event type -> no match", func(t *testing.T) {
		match, err := handler.CompareConfig(
			WebhookConfiguration{EventTypes: []string{EventPropertyCreated}},
			WebhookConfiguration{EventTypes: []string{EventPropertyCreated, EventPropertyTagAdded}},
		)

		require.NoError(t, err)
		assert.False(t, match)
	})
}

func Test__WebhookHandler__Setup(t *testing.T) {
	handler := &ImmoJumpWebhookHandler{}

	t.Run("creates the remote subscription and stores its id", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 201, map[string]any{"id": "sub-1"})},
		}
		webhook := &contexts.WebhookConfigContext{
			URL:           "https://hooks.example.com/abc",
			Configuration: WebhookConfiguration{EventTypes: []string{EventPropertyCreated}},
		}

		metadata, err := handler.Setup(handlerContext(webhook, httpContext))
		require.NoError(t, err)

		stored, ok := metadata.(*WebhookMetadata)
		require.True(t, ok)
		assert.Equal(t, "sub-1", stored.ID)

		body := requestBody(t, httpContext.Requests[0])
		assert.Equal(t, "https://hooks.example.com/abc", body["target_url"])
	})

	t.Run("at least one event type is required", func(t *testing.T) {
		webhook := &contexts.WebhookConfigContext{
			URL:           "https://hooks.example.com/abc",
			Configuration: WebhookConfiguration{},
		}

		_, err := handler.Setup(handlerContext(webhook, &contexts.HTTPContext{}))
		require.ErrorContains(t, err, "at least one event type is required")
	})
}

func Test__WebhookHandler__Cleanup(t *testing.T) {
	handler := &ImmoJumpWebhookHandler{}

	t.Run("deletes the remote subscription", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{Responses: []*http.Response{httpResponse(204, "")}}
		webhook := &contexts.WebhookConfigContext{Metadata: WebhookMetadata{ID: "sub-1"}}

		require.NoError(t, handler.Cleanup(handlerContext(webhook, httpContext)))
		require.Len(t, httpContext.Requests, 1)
		assert.Equal(t, "DELETE", httpContext.Requests[0].Method)
		assert.Equal(t, "/api/integrations/webhooks/sub-1", httpContext.Requests[0].URL.Path)
	})

	t.Run("subscription already gone -> no error", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 404, map[string]any{"message": "not found"})},
		}
		webhook := &contexts.WebhookConfigContext{Metadata: WebhookMetadata{ID: "sub-1"}}

		require.NoError(t, handler.Cleanup(handlerContext(webhook, httpContext)))
	})

	t.Run("subscription never created -> no-op", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{}
		webhook := &contexts.WebhookConfigContext{}

		require.NoError(t, handler.Cleanup(handlerContext(webhook, httpContext)))
		assert.Empty(t, httpContext.Requests)
	})

	t.Run("other delete failures are swallowed", func(t *testing.T) {
		httpContext := &contexts.HTTPContext{
			Responses: []*http.Response{jsonResponse(t, 500, map[string]any{"message": "boom"})},
		}
		webhook := &contexts.WebhookConfigContext{Metadata: WebhookMetadata{ID: "sub-1"}}

		require.NoError(t, handler.Cleanup(handlerContext(webhook, httpContext)))
	})
}
