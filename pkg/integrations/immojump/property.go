package immojump

import (
	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

type Property struct{}

func (c *Property) Name() string {
	return "immojump.property"
}

func (c *Property) Label() string {
	return "Property"
}

func (c *Property) Description() string {
	return "Create, read, update and delete ImmoJump properties"
}

func (c *Property) Documentation() string {
	return `The Property component manages properties (Immobilien) in ImmoJump.

## Operations

- **Get Many**: List properties, with optional pagination
- **Get**: Fetch a single property by ID
- **Create**: Create a property with a type and a JSON data object
- **Update**: Update selected fields of a property
- **Delete**: Delete a property
- **Update Status**: Move a property to another status
- **Set Tags**: Replace the tags assigned to a property

## Notes

- The ` + "`Data`" + ` field takes the raw property data as JSON
- Statuses and tags can be picked from the dropdowns, which are loaded
  from your ImmoJump organisation`
}

func (c *Property) Icon() string {
	return "building"
}

func (c *Property) Color() string {
	return "blue"
}

func (c *Property) Configuration() []configuration.Field {
	fields := []configuration.Field{
		operationField(
			configuration.FieldOption{Label: "Get Many", Value: "getAll"},
			configuration.FieldOption{Label: "Get", Value: "get"},
			configuration.FieldOption{Label: "Create", Value: "create"},
			configuration.FieldOption{Label: "Update", Value: "update"},
			configuration.FieldOption{Label: "Delete", Value: "delete"},
			configuration.FieldOption{Label: "Update Status", Value: "updateStatus"},
			configuration.FieldOption{Label: "Set Tags", Value: "setTags"},
		),
		{
			Name:                 "immobilieId",
			Label:                "Property ID",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("get", "update", "delete", "updateStatus", "setTags"),
		},
		{
			Name:                 "type",
			Label:                "Type",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			Placeholder:          "ETW",
			Description:          "The property type, e.g. ETW or EFH",
			VisibilityConditions: visibleFor("create"),
		},
		{
			Name:                 "daten",
			Label:                "Data",
			Type:                 configuration.FieldTypeJSON,
			Description:          "The property data as a JSON object",
			Placeholder:          `{"titel": "Musterwohnung"}`,
			VisibilityConditions: visibleFor("create"),
		},
		{
			Name:                 "updateFields",
			Label:                "Update Fields",
			Type:                 configuration.FieldTypeJSON,
			Description:          "Only the fields present here are sent to the API",
			VisibilityConditions: visibleFor("update"),
		},
		{
			Name:     "statusId",
			Label:    "Status",
			Type:     configuration.FieldTypeSelect,
			Required: true,
			TypeOptions: &configuration.TypeOptions{
				Select: &configuration.SelectTypeOptions{
					LoadFrom: ResourceTypeStatus,
				},
			},
			VisibilityConditions: visibleFor("updateStatus"),
		},
		{
			Name:  "tagIds",
			Label: "Tags",
			Type:  configuration.FieldTypeMultiSelect,
			TypeOptions: &configuration.TypeOptions{
				MultiSelect: &configuration.MultiSelectTypeOptions{
					LoadFrom: ResourceTypeTag,
				},
			},
			Description:          "The full set of tags the property should have",
			VisibilityConditions: visibleFor("setTags"),
		},
	}

	return append(fields, returnAllFields("getAll")...)
}

func (c *Property) Execute(ctx core.ExecutionContext) error {
	return runComponent(ctx, "property")
}
