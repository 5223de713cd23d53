package client

import (
	"errors"
	"log/slog"
	"net/http"

	"uvc-cli/internal/camclient"
)

// GetSnapshot fetches a JPEG through the NVR's camera proxy endpoint.
func (c *Client) GetSnapshot(identifier string) ([]byte, error) {
	resp, err := c.raw(http.MethodGet, "/api/2.0/snapshot/camera/"+identifier+"?force=true", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// SnapshotWithFallback tries the camera's own HTTP endpoint first and
// falls back to the NVR proxy when the camera refuses the login or
// cannot be reached. This single fallback is the only retry-like
// behavior in the client.
func (c *Client) SnapshotWithFallback(identifier string, camera map[string]any, password string) ([]byte, error) {
	host, _ := camera["host"].(string)
	username, _ := camera["username"].(string)

	var direct *camclient.Client
	if c.version.AtLeast(3, 2, 0) {
		direct = camclient.NewV320(host, username, password)
	} else {
		direct = camclient.New(host, username, password)
	}

	data, err := direct.Snapshot()
	if err == nil {
		return data, nil
	}
	if errors.Is(err, camclient.ErrAuth) || errors.Is(err, camclient.ErrConnect) {
		c.log.Debug("camera-direct snapshot failed, proxying through nvr",
			slog.String("camera", identifier), slog.String("error", err.Error()))
		return c.GetSnapshot(identifier)
	}
	return nil, err
}
