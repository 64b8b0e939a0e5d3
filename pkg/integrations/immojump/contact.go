package immojump

import (
	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

type Contact struct{}

func (c *Contact) Name() string {
	return "immojump.contact"
}

func (c *Contact) Label() string {
	return "Contact"
}

func (c *Contact) Description() string {
	return "Create, read, update and delete ImmoJump contacts"
}

func (c *Contact) Documentation() string {
	return `The Contact component manages contacts in ImmoJump.

## Operations

- **Get Many**: List contacts, with optional search and sorting
- **Get**: Fetch a single contact by ID
- **Create**: Create a contact from a first and last name plus optional details
- **Update**: Update selected fields of a contact
- **Delete**: Delete a contact

## Notes

- Only fields present in ` + "`Update Fields`" + ` are sent to the API;
  everything else stays untouched`
}

func (c *Contact) Icon() string {
	return "user"
}

func (c *Contact) Color() string {
	return "green"
}

func (c *Contact) Configuration() []configuration.Field {
	fields := []configuration.Field{
		operationField(
			configuration.FieldOption{Label: "Get Many", Value: "getAll"},
			configuration.FieldOption{Label: "Get", Value: "get"},
			configuration.FieldOption{Label: "Create", Value: "create"},
			configuration.FieldOption{Label: "Update", Value: "update"},
			configuration.FieldOption{Label: "Delete", Value: "delete"},
		),
		{
			Name:                 "contactId",
			Label:                "Contact ID",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("get", "update", "delete"),
		},
		{
			Name:                 "firstName",
			Label:                "First Name",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("create"),
		},
		{
			Name:                 "lastName",
			Label:                "Last Name",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("create"),
		},
		{
			Name:                 "additionalFields",
			Label:                "Additional Fields",
			Type:                 configuration.FieldTypeJSON,
			Description:          "Optional contact details: email, phone, mobile, address, role, company",
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
			Name:                 "search",
			Label:                "Search",
			Type:                 configuration.FieldTypeString,
			Description:          "Free-text search over contact names and details",
			VisibilityConditions: visibleFor("getAll"),
		},
		{
			Name:                 "sort",
			Label:                "Sort By",
			Type:                 configuration.FieldTypeString,
			Placeholder:          "last_name",
			VisibilityConditions: visibleFor("getAll"),
		},
		{
			Name:  "order",
			Label: "Order",
			Type:  configuration.FieldTypeSelect,
			TypeOptions: &configuration.TypeOptions{
				Select: &configuration.SelectTypeOptions{
					Options: []configuration.FieldOption{
						{Label: "Ascending", Value: "asc"},
						{Label: "Descending", Value: "desc"},
					},
				},
			},
			VisibilityConditions: visibleFor("getAll"),
		},
	}

	return append(fields, returnAllFields("getAll")...)
}

func (c *Contact) Execute(ctx core.ExecutionContext) error {
	return runComponent(ctx, "contact")
}
