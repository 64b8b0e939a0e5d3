package immojump

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

/*
 * configParams normalizes the host-provided configuration into the
 * map the operation table consumes. The host sends JSON-typed maps;
 * anything else goes through mapstructure.
 */
func configParams(config any) (map[string]any, error) {
	if params, ok := config.(map[string]any); ok {
		return params, nil
	}

	params := map[string]any{}
	if err := mapstructure.Decode(config, &params); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return params, nil
}

/*
 * executeOperation dispatches one configured operation through the
 * request builder and returns the emitted payloads. List operations go
 * through the pager; everything else is a single request. Responses
 * with no body (deletes) are normalized to a success marker.
 */
func executeOperation(client *Client, resource, operation string, params map[string]any) ([]any, error) {
	if _, ok := listOperation(resource, operation); ok {
		pager, err := NewPager(client, resource, operation, params)
		if err != nil {
			return nil, err
		}
		return pager.Collect()
	}

	spec, err := BuildRequest(client, resource, operation, params)
	if err != nil {
		return nil, err
	}

	result, err := client.Execute(spec)
	if err != nil {
		return nil, err
	}

	if result.Body == nil {
		return []any{map[string]any{"success": true}}, nil
	}

	return []any{result.Body}, nil
}

func runComponent(ctx core.ExecutionContext, resource string) error {
	params, err := configParams(ctx.Configuration)
	if err != nil {
		return err
	}

	operation := stringParam(params, "operation")
	if operation == "" {
		return &ValidationError{Message: "operation is required"}
	}

	client, err := NewClient(ctx.HTTP, ctx.Integration)
	if err != nil {
		return err
	}

	payloads, err := executeOperation(client, resource, operation, params)
	if err != nil {
		return err
	}

	return ctx.ExecutionState.Emit(
		core.DefaultOutputChannel.Name,
		fmt.Sprintf("immojump.%s.%s", resource, operation),
		payloads,
	)
}

// visibleFor scopes a field to a set of operations.
func visibleFor(operations ...string) []configuration.VisibilityCondition {
	return []configuration.VisibilityCondition{
		{Field: "operation", Values: operations},
	}
}

func operationField(options ...configuration.FieldOption) configuration.Field {
	return configuration.Field{
		Name:     "operation",
		Label:    "Operation",
		Type:     configuration.FieldTypeSelect,
		Required: true,
		TypeOptions: &configuration.TypeOptions{
			Select: &configuration.SelectTypeOptions{Options: options},
		},
	}
}

func returnAllFields(operation string) []configuration.Field {
	return []configuration.Field{
		{
			Name:                 "returnAll",
			Label:                "Return All",
			Type:                 configuration.FieldTypeBoolean,
			Default:              false,
			Description:          "Fetch every page instead of stopping at the limit",
			VisibilityConditions: visibleFor(operation),
		},
		{
			Name:                 "limit",
			Label:                "Limit",
			Type:                 configuration.FieldTypeNumber,
			Description:          "Maximum number of results to return",
			VisibilityConditions: visibleFor(operation),
		},
	}
}
