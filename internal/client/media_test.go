package client_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSnapshot(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())
	c := nvr.client()

	img, err := c.GetSnapshot(camID)
	require.NoError(t, err)
	assert.Equal(t, nvr.snapshot, img)
}

func TestSnapshotFallsBackOnCameraAuthError(t *testing.T) {
	// Camera that refuses every login.
	camSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer camSrv.Close()

	nvr := newFakeNVR(t, "3.2.0")
	record := testCamera()
	record["host"] = hostPort(t, camSrv.URL)
	nvr.addCamera(record)
	c := nvr.client()

	img, err := c.SnapshotWithFallback(camID, record, "wrongpass")
	require.NoError(t, err, "camera auth failure must fall back, not propagate")
	assert.Equal(t, nvr.snapshot, img)
}

func TestSnapshotFallsBackOnCameraConnectError(t *testing.T) {
	// Camera address that nothing listens on.
	camSrv := httptest.NewServer(http.NotFoundHandler())
	deadHost := hostPort(t, camSrv.URL)
	camSrv.Close()

	nvr := newFakeNVR(t, "3.2.0")
	record := testCamera()
	record["host"] = deadHost
	nvr.addCamera(record)
	c := nvr.client()

	img, err := c.SnapshotWithFallback(camID, record, "ubnt")
	require.NoError(t, err)
	assert.Equal(t, nvr.snapshot, img)
}

func TestSnapshotPrefersCameraDirect(t *testing.T) {
	direct := []byte("\xff\xd8direct-jpeg")
	camSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/1.1/login":
			w.WriteHeader(http.StatusOK)
		case "/snap.jpeg":
			_, _ = w.Write(direct)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer camSrv.Close()

	nvr := newFakeNVR(t, "3.2.0")
	record := testCamera()
	record["host"] = hostPort(t, camSrv.URL)
	nvr.addCamera(record)
	c := nvr.client()

	img, err := c.SnapshotWithFallback(camID, record, "ubnt")
	require.NoError(t, err)
	assert.Equal(t, direct, img)
}

func hostPort(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Host
}
