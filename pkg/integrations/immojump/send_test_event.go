package immojump

import (
	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

type SendTestEvent struct{}

func (c *SendTestEvent) Name() string {
	return "immojump.sendTestEvent"
}

func (c *SendTestEvent) Label() string {
	return "Send Test Event"
}

func (c *SendTestEvent) Description() string {
	return "Send a test integration event to verify webhook delivery"
}

func (c *SendTestEvent) Documentation() string {
	return `The Send Test Event component asks ImmoJump to emit a synthetic
integration event. Use it to verify that webhook subscriptions and
trigger filters behave as expected before relying on real events.

## Configuration

- **Object Type**: The entity the event refers to, e.g. ` + "`immobilie`" + `
- **Object ID**: The id of the entity
- **Payload**: Optional JSON payload attached to the event`
}

func (c *SendTestEvent) Icon() string {
	return "zap"
}

func (c *SendTestEvent) Color() string {
	return "gray"
}

func (c *SendTestEvent) Configuration() []configuration.Field {
	return []configuration.Field{
		operationField(
			configuration.FieldOption{Label: "Send Test Event", Value: "sendTestEvent"},
		),
		{
			Name:                 "objectType",
			Label:                "Object Type",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			Placeholder:          "immobilie",
			VisibilityConditions: visibleFor("sendTestEvent"),
		},
		{
			Name:                 "objectId",
			Label:                "Object ID",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("sendTestEvent"),
		},
		{
			Name:                 "payload",
			Label:                "Payload",
			Type:                 configuration.FieldTypeJSON,
			Description:          "Optional JSON payload delivered with the event",
			VisibilityConditions: visibleFor("sendTestEvent"),
		},
	}
}

func (c *SendTestEvent) Execute(ctx core.ExecutionContext) error {
	return runComponent(ctx, "integration-event")
}
