package immojump

import (
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/immojumphq/immojump-connect/pkg/core"
)

const (
	ResourceTypeStatus  = "status"
	ResourceTypeTag     = "tag"
	ResourceTypeChannel = "channel"
)

/*
 * loadOptions fetches the selectable reference data behind a dropdown:
 * property statuses, organisation tags or feed channels. Failures never
 * propagate as errors; the picker stays usable and shows diagnostic
 * placeholder entries instead.
 */
func loadOptions(logger *log.Entry, client *Client, resourceType string) ([]core.IntegrationResource, error) {
	switch resourceType {
	case ResourceTypeStatus:
		return loadListOptions(logger, client, resourceType, "/api/statuses/statuses", "Status")
	case ResourceTypeTag:
		orgID := client.OrganisationID()
		if orgID == "" {
			// Tags are organisation scoped. Without an organisation id
			// there is nothing to fetch, so surface that in the picker.
			return []core.IntegrationResource{
				{Type: resourceType, Name: "Debug: Missing organisation", ID: "missing_org"},
			}, nil
		}
		return loadListOptions(logger, client, resourceType, "/api/"+url.PathEscape(orgID)+"/tags", "Tag")
	case ResourceTypeChannel:
		return loadListOptions(logger, client, resourceType, "/api/organisation-feed/channels", "Channel")
	default:
		return nil, fmt.Errorf("unknown resource type %s", resourceType)
	}
}

func loadListOptions(logger *log.Entry, client *Client, resourceType, path, labelPrefix string) ([]core.IntegrationResource, error) {
	result, err := client.Execute(&RequestSpec{Method: http.MethodGet, Path: path})
	if err != nil {
		logger.WithError(err).Warnf("failed to load %s options", resourceType)
		return []core.IntegrationResource{
			{Type: resourceType, Name: "Debug: API Error", ID: "error"},
			{Type: resourceType, Name: err.Error(), ID: "debug"},
		}, nil
	}

	records := extractItems(result.Body)
	if records == nil {
		logger.Warnf("unexpected %s options response shape", resourceType)
		return []core.IntegrationResource{}, nil
	}

	resources := make([]core.IntegrationResource, 0, len(records))
	for _, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			continue
		}

		id := stringifyID(fields["id"])
		if id == "" {
			continue
		}

		name, _ := fields["name"].(string)
		if name == "" {
			name = fmt.Sprintf("%s %s", labelPrefix, id)
		}

		resources = append(resources, core.IntegrationResource{
			Type: resourceType,
			Name: name,
			ID:   id,
		})
	}

	return resources, nil
}
