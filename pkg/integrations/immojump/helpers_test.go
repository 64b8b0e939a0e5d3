package immojump

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immojumphq/immojump-connect/test/support/contexts"
)

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	return httpResponse(status, string(encoded))
}

func testClient(t *testing.T, config map[string]any, responses ...*http.Response) (*Client, *contexts.HTTPContext) {
	if config == nil {
		config = map[string]any{
			"baseUrl": "https://app.immojump.test",
			"token":   "token-123",
		}
	}

	httpContext := &contexts.HTTPContext{Responses: responses}
	client, err := NewClient(httpContext, &contexts.IntegrationContext{Configuration: config})
	require.NoError(t, err)
	return client, httpContext
}

func requestBody(t *testing.T, request *http.Request) map[string]any {
	raw, err := io.ReadAll(request.Body)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
