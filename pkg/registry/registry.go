package registry

import (
	"fmt"
	"sync"

	"github.com/immojumphq/immojump-connect/pkg/core"
)

var (
	mu              sync.RWMutex
	integrations    = map[string]core.Integration{}
	webhookHandlers = map[string]core.WebhookHandler{}
)

/*
 * RegisterIntegration makes an integration available to the host.
 * Called from the integration package's init().
 */
func RegisterIntegration(name string, integration core.Integration) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := integrations[name]; ok {
		panic(fmt.Sprintf("integration %s registered twice", name))
	}

	integrations[name] = integration
}

/*
 * RegisterIntegrationWithWebhookHandler registers an integration together
 * with the handler that manages its remote webhook subscriptions.
 */
func RegisterIntegrationWithWebhookHandler(name string, integration core.Integration, handler core.WebhookHandler) {
	RegisterIntegration(name, integration)

	mu.Lock()
	defer mu.Unlock()
	webhookHandlers[name] = handler
}

func GetIntegration(name string) (core.Integration, error) {
	mu.RLock()
	defer mu.RUnlock()

	integration, ok := integrations[name]
	if !ok {
		return nil, fmt.Errorf("integration %s not found", name)
	}

	return integration, nil
}

func GetWebhookHandler(name string) (core.WebhookHandler, error) {
	mu.RLock()
	defer mu.RUnlock()

	handler, ok := webhookHandlers[name]
	if !ok {
		return nil, fmt.Errorf("no webhook handler for integration %s", name)
	}

	return handler, nil
}

func ListIntegrations() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(integrations))
	for name := range integrations {
		names = append(names, name)
	}

	return names
}
