package immojump

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/ohler55/ojg/jp"

	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

const (
	EventPropertyCreated       = "immobilie.created"
	EventPropertyStatusChanged = "immobilie.status_changed"
	EventPropertyTagAdded      = "immobilie.tag_added"
	EventPropertyTagRemoved    = "immobilie.tag_removed"

	// dedupeWindowSize bounds the per-trigger window of seen event ids.
	// Oldest ids are evicted first.
	dedupeWindowSize = 500
)

type OnEvent struct{}

type OnEventConfiguration struct {
	Events     []string `json:"events" mapstructure:"events"`
	StatusFrom string   `json:"statusFrom" mapstructure:"statusFrom"`
	StatusTo   string   `json:"statusTo" mapstructure:"statusTo"`
	TagName    string   `json:"tagName" mapstructure:"tagName"`
	PropertyID string   `json:"propertyId" mapstructure:"propertyId"`
	Dedupe     *bool    `json:"dedupe" mapstructure:"dedupe"`
}

func (c *OnEventConfiguration) dedupeEnabled() bool {
	return c.Dedupe == nil || *c.Dedupe
}

type OnEventMetadata struct {
	SeenEventIDs []string `json:"seenEventIds" mapstructure:"seenEventIds"`
}

func (t *OnEvent) Name() string {
	return "immojump.onEvent"
}

func (t *OnEvent) Label() string {
	return "On Event"
}

func (t *OnEvent) Description() string {
	return "Listen to ImmoJump property events"
}

func (t *OnEvent) Documentation() string {
	return `The On Event trigger starts a workflow execution when ImmoJump
delivers a property event.

## Event Types

- **immobilie.created**: A property was created
- **immobilie.status_changed**: A property moved to another status
- **immobilie.tag_added**: A tag was added to a property
- **immobilie.tag_removed**: A tag was removed from a property

## Filters

All configured filters must match for an event to fire:

- **Status From / Status To**: Match the old or new status of a status
  change, by name or id
- **Tag**: Match the tag of a tag event, by name or id
- **Property ID**: Only fire for events on this property

## Deduplication

ImmoJump may deliver the same event more than once. Deduplication keeps
a window of recently seen event ids and drops repeats. Disable it only
when your workflow is idempotent anyway.`
}

func (t *OnEvent) Icon() string {
	return "building"
}

func (t *OnEvent) Color() string {
	return "blue"
}

func (t *OnEvent) Configuration() []configuration.Field {
	return []configuration.Field{
		{
			Name:     "events",
			Label:    "Events",
			Type:     configuration.FieldTypeMultiSelect,
			Required: true,
			TypeOptions: &configuration.TypeOptions{
				MultiSelect: &configuration.MultiSelectTypeOptions{
					Options: []configuration.FieldOption{
						{Label: "Property Created", Value: EventPropertyCreated},
						{Label: "Property Status Changed", Value: EventPropertyStatusChanged},
						{Label: "Property Tag Added", Value: EventPropertyTagAdded},
						{Label: "Property Tag Removed", Value: EventPropertyTagRemoved},
					},
				},
			},
		},
		{
			Name:                 "statusFrom",
			Label:                "Status From",
			Type:                 configuration.FieldTypeString,
			Description:          "Only fire when the property left this status (name or id)",
			VisibilityConditions: []configuration.VisibilityCondition{{Field: "events", Values: []string{EventPropertyStatusChanged}}},
		},
		{
			Name:                 "statusTo",
			Label:                "Status To",
			Type:                 configuration.FieldTypeString,
			Description:          "Only fire when the property entered this status (name or id)",
			VisibilityConditions: []configuration.VisibilityCondition{{Field: "events", Values: []string{EventPropertyStatusChanged}}},
		},
		{
			Name:                 "tagName",
			Label:                "Tag",
			Type:                 configuration.FieldTypeString,
			Description:          "Only fire for this tag (name or id)",
			VisibilityConditions: []configuration.VisibilityCondition{{Field: "events", Values: []string{EventPropertyTagAdded, EventPropertyTagRemoved}}},
		},
		{
			Name:        "propertyId",
			Label:       "Property ID",
			Type:        configuration.FieldTypeString,
			Description: "Only fire for events on this property",
		},
		{
			Name:        "dedupe",
			Label:       "Deduplicate Events",
			Type:        configuration.FieldTypeBoolean,
			Default:     true,
			Description: "Drop repeated deliveries of the same event id",
		},
	}
}

func (t *OnEvent) Setup(ctx core.TriggerContext) error {
	config := OnEventConfiguration{}
	err := mapstructure.Decode(ctx.Configuration, &config)
	if err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	if len(config.Events) == 0 {
		return fmt.Errorf("at least one event type is required")
	}

	return ctx.Integration.RequestWebhook(WebhookConfiguration{
		EventTypes: config.Events,
	})
}

/*
 * Payload field locations. Events carry human-readable names where
 * available and fall back to raw ids, so each filter probes both.
 */
var (
	statusFromPaths = []jp.Expr{
		jp.MustParseString("$.payload.old_status_name"),
		jp.MustParseString("$.payload.old_status_id"),
	}
	statusToPaths = []jp.Expr{
		jp.MustParseString("$.payload.new_status_name"),
		jp.MustParseString("$.payload.new_status_id"),
	}
	tagPaths = []jp.Expr{
		jp.MustParseString("$.payload.tag_name"),
		jp.MustParseString("$.payload.tag_id"),
	}
	objectIDPaths = []jp.Expr{
		jp.MustParseString("$.object.id"),
	}
)

func (t *OnEvent) HandleWebhook(ctx core.WebhookRequestContext) (int, error) {
	config := OnEventConfiguration{}
	err := mapstructure.Decode(ctx.Configuration, &config)
	if err != nil {
		return http.StatusInternalServerError, fmt.Errorf("failed to decode configuration: %w", err)
	}

	var event map[string]any
	if err := json.Unmarshal(ctx.Body, &event); err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid event payload: %w", err)
	}

	//
	// Deduplicate before anything else, so a repeated delivery is
	// dropped even if the trigger configuration changed in between.
	//
	if config.dedupeEnabled() {
		seen, err := t.recordEventID(ctx.Metadata, eventID(event))
		if err != nil {
			return http.StatusInternalServerError, err
		}
		if seen {
			ctx.Logger.WithField("event_id", eventID(event)).Debug("dropping duplicate event")
			return http.StatusOK, nil
		}
	}

	eventType, _ := event["event_type"].(string)
	if eventType == "" {
		eventType, _ = event["type"].(string)
	}

	if !slices.Contains(config.Events, eventType) {
		return http.StatusOK, nil
	}

	if !t.matchesFilters(&config, eventType, event) {
		return http.StatusOK, nil
	}

	//
	// The event payload is forwarded unchanged.
	//
	if err := ctx.Events.Emit(eventType, event); err != nil {
		return http.StatusInternalServerError, fmt.Errorf("failed to emit event: %w", err)
	}

	return http.StatusOK, nil
}

func (t *OnEvent) Cleanup(ctx core.TriggerContext) error {
	return nil
}

/*
 * recordEventID inserts the id into the seen window and reports whether
 * it was already there. Ids beyond the window size are evicted oldest
 * first. Events without an id are never considered duplicates.
 */
func (t *OnEvent) recordEventID(metadata core.MetadataContext, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	window := OnEventMetadata{}
	if raw := metadata.Get(); raw != nil {
		if err := mapstructure.Decode(raw, &window); err != nil {
			return false, fmt.Errorf("failed to decode trigger metadata: %w", err)
		}
	}

	if slices.Contains(window.SeenEventIDs, id) {
		return true, nil
	}

	window.SeenEventIDs = append(window.SeenEventIDs, id)
	if len(window.SeenEventIDs) > dedupeWindowSize {
		window.SeenEventIDs = window.SeenEventIDs[len(window.SeenEventIDs)-dedupeWindowSize:]
	}

	if err := metadata.Set(window); err != nil {
		return false, fmt.Errorf("failed to persist trigger metadata: %w", err)
	}

	return false, nil
}

func eventID(event map[string]any) string {
	if id := stringifyID(event["event_id"]); id != "" {
		return id
	}
	return stringifyID(event["id"])
}

// matchesFilters applies the configured attribute filters. All
// configured filters must match.
func (t *OnEvent) matchesFilters(config *OnEventConfiguration, eventType string, event map[string]any) bool {
	if config.PropertyID != "" && firstPathValue(event, objectIDPaths) != config.PropertyID {
		return false
	}

	if eventType == EventPropertyStatusChanged {
		if config.StatusFrom != "" && firstPathValue(event, statusFromPaths) != config.StatusFrom {
			return false
		}
		if config.StatusTo != "" && firstPathValue(event, statusToPaths) != config.StatusTo {
			return false
		}
	}

	if eventType == EventPropertyTagAdded || eventType == EventPropertyTagRemoved {
		if config.TagName != "" && firstPathValue(event, tagPaths) != config.TagName {
			return false
		}
	}

	return true
}

// firstPathValue returns the first non-empty value any of the paths
// resolves to, stringified.
func firstPathValue(event map[string]any, paths []jp.Expr) string {
	for _, path := range paths {
		for _, value := range path.Get(event) {
			if s := stringifyID(value); s != "" {
				return s
			}
		}
	}
	return ""
}
