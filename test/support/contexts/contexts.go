package contexts

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Logger returns a quiet logger entry for use in tests.
func Logger() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.ErrorLevel)
	return log.NewEntry(logger)
}

type EventContext struct {
	Payloads []Payload
}

type Payload struct {
	Type string
	Data any
}

func (e *EventContext) Emit(payloadType string, payload any) error {
	e.Payloads = append(e.Payloads, Payload{Type: payloadType, Data: payload})
	return nil
}

func (e *EventContext) Count() int {
	return len(e.Payloads)
}

type MetadataContext struct {
	Metadata any
}

func (m *MetadataContext) Get() any {
	return m.Metadata
}

func (m *MetadataContext) Set(metadata any) error {
	m.Metadata = metadata
	return nil
}

type IntegrationContext struct {
	IntegrationID    string
	Configuration    map[string]any
	Metadata         any
	State            string
	StateDescription string
	WebhookRequests  []any
}

func (c *IntegrationContext) ID() uuid.UUID {
	if c.IntegrationID != "" {
		return uuid.MustParse(c.IntegrationID)
	}

	return uuid.New()
}

func (c *IntegrationContext) GetConfig(name string) ([]byte, error) {
	if c.Configuration == nil {
		return nil, fmt.Errorf("config not found: %s", name)
	}

	value, ok := c.Configuration[name]
	if !ok {
		return nil, fmt.Errorf("config not found: %s", name)
	}

	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("config is not a string: %s", name)
	}

	return []byte(s), nil
}

func (c *IntegrationContext) GetMetadata() any {
	return c.Metadata
}

func (c *IntegrationContext) SetMetadata(metadata any) {
	c.Metadata = metadata
}

func (c *IntegrationContext) Ready() {
	c.State = "ready"
	c.StateDescription = ""
}

func (c *IntegrationContext) Error(message string) {
	c.State = "error"
	c.StateDescription = message
}

func (c *IntegrationContext) RequestWebhook(configuration any) error {
	c.WebhookRequests = append(c.WebhookRequests, configuration)
	return nil
}

type ExecutionStateContext struct {
	Finished       bool
	Passed         bool
	FailureReason  string
	FailureMessage string
	Channel        string
	Type           string
	Payloads       []any
}

func (c *ExecutionStateContext) Emit(channel, payloadType string, payloads []any) error {
	c.Finished = true
	c.Passed = true
	c.Channel = channel
	c.Type = payloadType
	c.Payloads = payloads
	return nil
}

func (c *ExecutionStateContext) Pass() error {
	c.Finished = true
	c.Passed = true
	return nil
}

func (c *ExecutionStateContext) Fail(reason, message string) error {
	c.Finished = true
	c.Passed = false
	c.FailureReason = reason
	c.FailureMessage = message
	return nil
}

type WebhookConfigContext struct {
	URL           string
	Configuration any
	Metadata      any
}

func (w *WebhookConfigContext) GetURL() string {
	return w.URL
}

func (w *WebhookConfigContext) GetConfiguration() any {
	return w.Configuration
}

func (w *WebhookConfigContext) GetMetadata() any {
	return w.Metadata
}

func (w *WebhookConfigContext) SetMetadata(metadata any) error {
	w.Metadata = metadata
	return nil
}

type HTTPContext struct {
	Requests  []*http.Request
	Responses []*http.Response
}

func (c *HTTPContext) Do(request *http.Request) (*http.Response, error) {
	c.Requests = append(c.Requests, request)

	if len(c.Responses) == 0 {
		return nil, fmt.Errorf("no response mocked")
	}

	response := c.Responses[0]
	c.Responses = c.Responses[1:]
	return response, nil
}
