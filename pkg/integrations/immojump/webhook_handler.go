package immojump

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/immojumphq/immojump-connect/pkg/core"
)

type WebhookConfiguration struct {
	EventTypes []string `json:"eventTypes" mapstructure:"eventTypes"`
}

type WebhookMetadata struct {
	ID string `json:"id" mapstructure:"id"`
}

type ImmoJumpWebhookHandler struct{}

/*
 * CompareConfig reports whether an existing subscription can serve a
 * requested one. A subscription covering a superset of the requested
 * event types is reused instead of creating a second one.
 */
func (h *ImmoJumpWebhookHandler) CompareConfig(a, b any) (bool, error) {
	configA := WebhookConfiguration{}
	configB := WebhookConfiguration{}

	err := mapstructure.Decode(a, &configA)
	if err != nil {
		return false, err
	}

	err = mapstructure.Decode(b, &configB)
	if err != nil {
		return false, err
	}

	for _, eventType := range configB.EventTypes {
		if !slices.Contains(configA.EventTypes, eventType) {
			return false, nil
		}
	}

	return true, nil
}

func (h *ImmoJumpWebhookHandler) Setup(ctx core.WebhookHandlerContext) (any, error) {
	client, err := NewClient(ctx.HTTP, ctx.Integration)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	config := WebhookConfiguration{}
	err = mapstructure.Decode(ctx.Webhook.GetConfiguration(), &config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook configuration: %w", err)
	}

	if len(config.EventTypes) == 0 {
		return nil, fmt.Errorf("at least one event type is required")
	}

	subscription, err := client.CreateWebhookSubscription(ctx.Webhook.GetURL(), config.EventTypes)
	if err != nil {
		return nil, fmt.Errorf("error creating webhook subscription: %w", err)
	}

	return &WebhookMetadata{ID: subscription.ID}, nil
}

/*
 * Cleanup deletes the remote subscription. Best-effort: a subscription
 * that is already gone is not an error.
 */
func (h *ImmoJumpWebhookHandler) Cleanup(ctx core.WebhookHandlerContext) error {
	metadata := WebhookMetadata{}
	err := mapstructure.Decode(ctx.Webhook.GetMetadata(), &metadata)
	if err != nil {
		return fmt.Errorf("failed to decode webhook metadata: %w", err)
	}

	// If the subscription was never created (Setup failed), there's
	// nothing to clean up.
	if metadata.ID == "" {
		return nil
	}

	client, err := NewClient(ctx.HTTP, ctx.Integration)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	err = client.DeleteWebhookSubscription(metadata.ID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil
		}
		ctx.Logger.WithError(err).Warn("error deleting webhook subscription")
	}

	return nil
}
