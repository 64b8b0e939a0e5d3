package immojump

import (
	"fmt"

	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
	"github.com/immojumphq/immojump-connect/pkg/registry"
)

func init() {
	registry.RegisterIntegrationWithWebhookHandler("immojump", &ImmoJump{}, &ImmoJumpWebhookHandler{})
}

type ImmoJump struct{}

func (i *ImmoJump) Name() string {
	return "immojump"
}

func (i *ImmoJump) Label() string {
	return "ImmoJump"
}

func (i *ImmoJump) Icon() string {
	return "building"
}

func (i *ImmoJump) Description() string {
	return "Manage properties, contacts and activities in ImmoJump"
}

func (i *ImmoJump) Instructions() string {
	return `Create an API token in your ImmoJump account settings and paste it below.

The base URL is the address of your ImmoJump instance, for example ` + "`https://app.immojump.com`" + `.
The organisation ID is optional; set it when your token has access to more than one organisation.`
}

func (i *ImmoJump) Configuration() []configuration.Field {
	return []configuration.Field{
		{
			Name:        "baseUrl",
			Label:       "Base URL",
			Type:        configuration.FieldTypeString,
			Required:    true,
			Description: "The base URL of your ImmoJump instance",
			Placeholder: "https://app.immojump.com",
		},
		{
			Name:        "token",
			Label:       "API Token",
			Type:        configuration.FieldTypeString,
			Required:    true,
			Sensitive:   true,
			Description: "Your ImmoJump API token",
		},
		{
			Name:        "organisationId",
			Label:       "Organisation ID",
			Type:        configuration.FieldTypeString,
			Description: "Scope all requests to this organisation. Required for tags and organisation-scoped listings.",
		},
	}
}

func (i *ImmoJump) Components() []core.Component {
	return []core.Component{
		&Property{},
		&Contact{},
		&Activity{},
		&Feed{},
		&SendTestEvent{},
	}
}

func (i *ImmoJump) Triggers() []core.Trigger {
	return []core.Trigger{
		&OnEvent{},
	}
}

/*
 * Sync validates the stored credentials by calling the authenticated
 * identity endpoint, then moves the integration to the ready state.
 */
func (i *ImmoJump) Sync(ctx core.SyncContext) error {
	client, err := NewClient(ctx.HTTP, ctx.Integration)
	if err != nil {
		ctx.Integration.Error(err.Error())
		return err
	}

	if err := client.TestAuth(); err != nil {
		message := fmt.Sprintf("error validating credentials: %v", err)
		ctx.Integration.Error(message)
		return fmt.Errorf("error validating credentials: %w", err)
	}

	ctx.Logger.WithField("integration_id", ctx.Integration.ID()).Info("immojump credentials validated")
	ctx.Integration.Ready()
	return nil
}

func (i *ImmoJump) ListResources(resourceType string, ctx core.ListResourcesContext) ([]core.IntegrationResource, error) {
	client, err := NewClient(ctx.HTTP, ctx.Integration)
	if err != nil {
		return nil, fmt.Errorf("error creating immojump client: %w", err)
	}

	return loadOptions(ctx.Logger, client, resourceType)
}

func (i *ImmoJump) Cleanup(ctx core.SyncContext) error {
	return nil
}
