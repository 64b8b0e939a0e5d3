package immojump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/immojumphq/immojump-connect/pkg/core"
)

const MaxResponseSize = 1 * 1024 * 1024 // 1MB

/*
 * Client resolves the stored ImmoJump credentials into an authenticated
 * request context and executes RequestSpecs against the API.
 */
type Client struct {
	baseURL        string
	token          string
	organisationID string
	http           core.HTTPContext
}

/*
 * RequestSpec is one concrete HTTP request against the ImmoJump API.
 * Built fresh per call, immutable once constructed. Paths are relative
 * to the credential base URL; auth headers are added at execution time.
 */
type RequestSpec struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

/*
 * Result is a successful (2xx) API response with its decoded JSON body.
 */
type Result struct {
	StatusCode int
	Body       any
}

func NewClient(httpContext core.HTTPContext, integration core.IntegrationContext) (*Client, error) {
	baseURL, err := requiredConfig(integration, "baseUrl")
	if err != nil {
		return nil, err
	}

	token, err := requiredConfig(integration, "token")
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:        normalizeBaseURL(baseURL),
		token:          token,
		organisationID: optionalConfig(integration, "organisationId"),
		http:           httpContext,
	}, nil
}

func optionalConfig(ctx core.IntegrationContext, name string) string {
	value, err := ctx.GetConfig(name)
	if err != nil {
		return ""
	}
	return string(value)
}

func requiredConfig(ctx core.IntegrationContext, name string) (string, error) {
	value, err := ctx.GetConfig(name)
	if err != nil || len(value) == 0 {
		return "", &ConfigError{Field: name}
	}
	return string(value), nil
}

// normalizeBaseURL strips exactly one trailing slash, so that joining
// base and path always produces a single separator.
func normalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/")
}

func (c *Client) OrganisationID() string {
	return c.organisationID
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.organisationID != "" {
		req.Header.Set("X-Organisation-Id", c.organisationID)
	}
}

/*
 * Execute runs one RequestSpec: single attempt, JSON in and out.
 * Transport failures come back as *NetworkError, non-2xx responses as
 * *APIError carrying the status code and the parsed body when possible.
 */
func (c *Client) Execute(spec *RequestSpec) (*Result, error) {
	apiURL := c.baseURL + spec.Path
	if len(spec.Query) > 0 {
		apiURL += "?" + spec.Query.Encode()
	}

	var bodyReader io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(spec.Method, apiURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if spec.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range spec.Headers {
		req.Header.Set(name, value)
	}
	c.setAuthHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	limitedReader := io.LimitReader(res.Body, MaxResponseSize+1)
	responseBody, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("error reading response body: %w", err)}
	}

	if len(responseBody) > MaxResponseSize {
		return nil, fmt.Errorf("response too large: exceeds maximum size of %d bytes", MaxResponseSize)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, newAPIError(res.StatusCode, responseBody)
	}

	if len(responseBody) == 0 {
		return &Result{StatusCode: res.StatusCode}, nil
	}

	var decoded any
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return nil, &APIError{
			Message:      fmt.Sprintf("response with status %d is not valid JSON", res.StatusCode),
			StatusCode:   res.StatusCode,
			ResponseBody: string(responseBody),
		}
	}

	return &Result{StatusCode: res.StatusCode, Body: decoded}, nil
}

func newAPIError(statusCode int, responseBody []byte) *APIError {
	apiError := &APIError{
		Message:    fmt.Sprintf("request failed with status %d: %s", statusCode, string(responseBody)),
		StatusCode: statusCode,
	}

	var decoded any
	if err := json.Unmarshal(responseBody, &decoded); err == nil {
		apiError.ResponseBody = decoded
	} else {
		apiError.ResponseBody = string(responseBody)
	}

	return apiError
}

// TestAuth verifies the credentials against the API.
func (c *Client) TestAuth() error {
	_, err := c.Execute(&RequestSpec{Method: http.MethodGet, Path: "/api/user/me-auth"})
	return err
}

type WebhookSubscription struct {
	ID         string   `json:"id"`
	TargetURL  string   `json:"target_url"`
	EventTypes []string `json:"event_types"`
}

type webhookSubscriptionRequest struct {
	TargetURL  string   `json:"target_url"`
	EventTypes []string `json:"event_types"`
}

func (c *Client) CreateWebhookSubscription(targetURL string, eventTypes []string) (*WebhookSubscription, error) {
	result, err := c.Execute(&RequestSpec{
		Method: http.MethodPost,
		Path:   "/api/integrations/webhooks",
		Body:   webhookSubscriptionRequest{TargetURL: targetURL, EventTypes: eventTypes},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating webhook subscription: %w", err)
	}

	record, ok := result.Body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("webhook subscription response has no id")
	}

	id := stringifyID(record["id"])
	if id == "" {
		return nil, fmt.Errorf("webhook subscription response has no id")
	}

	return &WebhookSubscription{ID: id, TargetURL: targetURL, EventTypes: eventTypes}, nil
}

func (c *Client) ListWebhookSubscriptions() ([]WebhookSubscription, error) {
	result, err := c.Execute(&RequestSpec{
		Method: http.MethodGet,
		Path:   "/api/integrations/webhooks",
	})
	if err != nil {
		return nil, fmt.Errorf("error listing webhook subscriptions: %w", err)
	}

	records, ok := result.Body.([]any)
	if !ok {
		return []WebhookSubscription{}, nil
	}

	subscriptions := make([]WebhookSubscription, 0, len(records))
	for _, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			continue
		}

		id := stringifyID(fields["id"])
		if id == "" {
			continue
		}

		subscription := WebhookSubscription{ID: id}
		if target, ok := fields["target_url"].(string); ok {
			subscription.TargetURL = target
		}
		subscriptions = append(subscriptions, subscription)
	}

	return subscriptions, nil
}

func (c *Client) DeleteWebhookSubscription(id string) error {
	_, err := c.Execute(&RequestSpec{
		Method: http.MethodDelete,
		Path:   "/api/integrations/webhooks/" + url.PathEscape(id),
	})
	return err
}

// stringifyID renders an id field that may arrive as a string or a number.
func stringifyID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
