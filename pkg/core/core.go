package core

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/immojumphq/immojump-connect/pkg/configuration"
)

var DefaultOutputChannel = OutputChannel{Name: "default", Label: "Default"}

/*
 * Integration is the entry point of an integration package.
 * The host discovers it through the registry and uses it to render
 * credential forms, list components/triggers and load selectable resources.
 */
type Integration interface {

	/*
	 * The unique identifier for the integration.
	 * This is how the host references it, and is used for registration.
	 */
	Name() string

	/*
	 * The label for the integration.
	 * This is how it is displayed in the UI.
	 */
	Label() string

	/*
	 * The icon for the integration.
	 */
	Icon() string

	/*
	 * A good description of what the integration does.
	 */
	Description() string

	/*
	 * Markdown instructions shown while configuring the integration.
	 */
	Instructions() string

	/*
	 * The credential/configuration fields exposed by the integration.
	 */
	Configuration() []configuration.Field

	/*
	 * The action components shipped by the integration.
	 */
	Components() []Component

	/*
	 * The triggers shipped by the integration.
	 */
	Triggers() []Trigger

	/*
	 * Sync validates the stored configuration against the remote API
	 * and moves the integration into the ready or error state.
	 */
	Sync(ctx SyncContext) error

	/*
	 * ListResources loads reference data (statuses, tags, channels)
	 * used to populate selection fields in the UI.
	 */
	ListResources(resourceType string, ctx ListResourcesContext) ([]IntegrationResource, error)

	/*
	 * Cleanup allows the integration to release remote resources
	 * after being removed. Default behavior does nothing.
	 */
	Cleanup(ctx SyncContext) error
}

/*
 * Component is a single action node: it maps its configuration to one
 * remote API call and emits the normalized response as its output.
 */
type Component interface {
	Name() string
	Label() string
	Description() string

	/*
	 * Detailed markdown documentation explaining how to use the component.
	 */
	Documentation() string

	Icon() string
	Color() string

	/*
	 * The configuration fields exposed by the component.
	 */
	Configuration() []configuration.Field

	/*
	 * Passes full execution control to the component.
	 *
	 * The component owns the execution state: it should finish the
	 * execution through ctx.ExecutionState before returning.
	 */
	Execute(ctx ExecutionContext) error
}

/*
 * Trigger is a webhook-driven node: the host routes inbound deliveries
 * to HandleWebhook, which filters them and emits matching events.
 */
type Trigger interface {
	Name() string
	Label() string
	Description() string
	Documentation() string
	Icon() string
	Color() string
	Configuration() []configuration.Field

	/*
	 * Setup is called when the trigger is activated.
	 * Triggers use it to request remote webhook subscriptions.
	 */
	Setup(ctx TriggerContext) error

	/*
	 * Handler for webhook deliveries. Returns the HTTP status code
	 * the host should respond with.
	 */
	HandleWebhook(ctx WebhookRequestContext) (int, error)

	/*
	 * Cleanup is called when the trigger is deactivated or removed.
	 */
	Cleanup(ctx TriggerContext) error
}

/*
 * WebhookHandler manages the lifecycle of remote webhook subscriptions
 * requested by triggers through IntegrationContext.RequestWebhook.
 */
type WebhookHandler interface {

	/*
	 * CompareConfig reports whether an existing subscription can serve
	 * a requested configuration, allowing subscription sharing.
	 */
	CompareConfig(a, b any) (bool, error)

	/*
	 * Setup registers the subscription with the remote API and returns
	 * the metadata to persist (e.g. the remote subscription id).
	 */
	Setup(ctx WebhookHandlerContext) (any, error)

	/*
	 * Cleanup deregisters the subscription. Best-effort: implementations
	 * should tolerate subscriptions that are already gone.
	 */
	Cleanup(ctx WebhookHandlerContext) error
}

type OutputChannel struct {
	Name        string
	Label       string
	Description string
}

/*
 * Integrations, components and triggers should always use this context
 * instead of net/http directly for executing HTTP requests.
 *
 * This makes it easy to write unit tests for the implementations,
 * and to control HTTP timeouts for everything in one place.
 */
type HTTPContext interface {
	Do(*http.Request) (*http.Response, error)
}

/*
 * IntegrationContext gives access to the stored integration
 * configuration and state.
 */
type IntegrationContext interface {
	ID() uuid.UUID
	GetConfig(name string) ([]byte, error)
	GetMetadata() any
	SetMetadata(metadata any)
	Ready()
	Error(message string)

	/*
	 * RequestWebhook asks the host to ensure a remote webhook
	 * subscription matching the given configuration exists.
	 */
	RequestWebhook(configuration any) error
}

/*
 * MetadataContext is a durable per-node cell persisted by the host
 * between invocations. Triggers keep their subscription id and the
 * deduplication window in it.
 */
type MetadataContext interface {
	Get() any
	Set(any) error
}

/*
 * EventContext emits trigger events into the workflow engine.
 */
type EventContext interface {
	Emit(payloadType string, payload any) error
}

/*
 * WebhookConfigContext exposes one webhook subscription to its handler.
 */
type WebhookConfigContext interface {
	GetURL() string
	GetConfiguration() any
	GetMetadata() any
	SetMetadata(any) error
}

/*
 * ExecutionStateContext allows components to control execution lifecycle.
 */
type ExecutionStateContext interface {

	/*
	 * Pass the execution, emitting a payload to the specified channel.
	 */
	Emit(channel, payloadType string, payloads []any) error

	/*
	 * Pass the execution, without emitting any payloads from it.
	 */
	Pass() error

	/*
	 * Fails the execution. No payloads are emitted.
	 */
	Fail(reason, message string) error
}

type SyncContext struct {
	Logger        *log.Entry
	Configuration any
	HTTP          HTTPContext
	Integration   IntegrationContext
}

type ListResourcesContext struct {
	Logger      *log.Entry
	HTTP        HTTPContext
	Integration IntegrationContext
}

type ExecutionContext struct {
	Logger         *log.Entry
	Configuration  any
	HTTP           HTTPContext
	Integration    IntegrationContext
	Metadata       MetadataContext
	ExecutionState ExecutionStateContext
}

type TriggerContext struct {
	Logger        *log.Entry
	Configuration any
	HTTP          HTTPContext
	Integration   IntegrationContext
	Metadata      MetadataContext
}

type WebhookRequestContext struct {
	Logger        *log.Entry
	Configuration any
	Body          []byte
	Headers       http.Header
	HTTP          HTTPContext
	Integration   IntegrationContext
	Metadata      MetadataContext
	Events        EventContext
}

type WebhookHandlerContext struct {
	Logger      *log.Entry
	HTTP        HTTPContext
	Integration IntegrationContext
	Webhook     WebhookConfigContext
}

/*
 * IntegrationResource is a selectable reference-data entry
 * (status, tag, channel) used to populate option fields.
 */
type IntegrationResource struct {
	Type string `json:"type"`
	Name string `json:"name"`
	ID   string `json:"id"`
}
