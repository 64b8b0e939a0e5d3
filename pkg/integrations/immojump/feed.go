package immojump

import (
	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

type Feed struct{}

func (c *Feed) Name() string {
	return "immojump.feed"
}

func (c *Feed) Label() string {
	return "Feed"
}

func (c *Feed) Description() string {
	return "Post messages to the ImmoJump organisation feed"
}

func (c *Feed) Documentation() string {
	return `The Feed component posts a message to the organisation feed.

## Configuration

- **Title**: The headline of the post
- **Message**: The body of the post
- **Channel**: Optional feed channel; leave empty to post to the main feed`
}

func (c *Feed) Icon() string {
	return "message-square"
}

func (c *Feed) Color() string {
	return "purple"
}

func (c *Feed) Configuration() []configuration.Field {
	return []configuration.Field{
		operationField(
			configuration.FieldOption{Label: "Post", Value: "post"},
		),
		{
			Name:                 "title",
			Label:                "Title",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("post"),
		},
		{
			Name:                 "message",
			Label:                "Message",
			Type:                 configuration.FieldTypeText,
			Required:             true,
			VisibilityConditions: visibleFor("post"),
		},
		{
			Name:  "channelId",
			Label: "Channel",
			Type:  configuration.FieldTypeSelect,
			TypeOptions: &configuration.TypeOptions{
				Select: &configuration.SelectTypeOptions{
					LoadFrom: ResourceTypeChannel,
				},
			},
			VisibilityConditions: visibleFor("post"),
		},
	}
}

func (c *Feed) Execute(ctx core.ExecutionContext) error {
	return runComponent(ctx, "feed")
}
