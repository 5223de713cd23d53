package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"uvc-cli/pkg/models"
)

func cameraPath(identifier string) string {
	return "/api/2.0/camera/" + identifier
}

// Index returns the cameras known to the NVR, skipping soft-deleted
// records.
func (c *Client) Index() ([]models.CameraSummary, error) {
	data, err := c.request(http.MethodGet, "/api/2.0/camera", nil)
	if err != nil {
		return nil, err
	}
	var cams []models.CameraSummary
	for _, record := range data {
		if deleted, _ := record["deleted"].(bool); deleted {
			continue
		}
		cams = append(cams, models.CameraSummaryFromMap(record))
	}
	return cams, nil
}

// NameToIdentifier resolves a camera name to the identifier used for
// camera lookups on this server version. The first camera with a
// matching name wins; ErrNotFound otherwise.
func (c *Client) NameToIdentifier(name string) (string, error) {
	cams, err := c.Index()
	if err != nil {
		return "", err
	}
	for _, cam := range cams {
		if cam.Name != name {
			continue
		}
		if c.CameraIdentifierKey() == "id" {
			return cam.ID, nil
		}
		return cam.UUID, nil
	}
	return "", ErrNotFound
}

// GetCamera fetches the full camera record. The record stays an
// untyped map: updates PUT the whole thing back and must not drop
// fields this client does not know about.
func (c *Client) GetCamera(identifier string) (map[string]any, error) {
	data, err := c.request(http.MethodGet, cameraPath(identifier), nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("camera %s: empty response", identifier)
	}
	return data[0], nil
}

// PutCamera writes a full camera record back and returns the server's
// updated copy.
func (c *Client) PutCamera(identifier string, camera map[string]any) (map[string]any, error) {
	data, err := c.request(http.MethodPut, cameraPath(identifier), camera)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("camera %s: empty response", identifier)
	}
	return data[0], nil
}

// Dump renders the raw camera record as indented JSON.
func (c *Client) Dump(identifier string) (string, error) {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(camera, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ListZones returns the camera's motion zones in server order.
func (c *Client) ListZones(identifier string) ([]map[string]any, error) {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return nil, err
	}
	raw, _ := camera["zones"].([]any)
	zones := make([]map[string]any, 0, len(raw))
	for _, z := range raw {
		if zone, ok := z.(map[string]any); ok {
			zones = append(zones, zone)
		}
	}
	return zones, nil
}

// PruneZones truncates the camera's zone list to its first entry.
func (c *Client) PruneZones(identifier string) error {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return err
	}
	zones, _ := camera["zones"].([]any)
	if len(zones) == 0 {
		return fmt.Errorf("camera %s has no zones", identifier)
	}
	camera["zones"] = zones[:1]
	_, err = c.PutCamera(identifier, camera)
	return err
}
