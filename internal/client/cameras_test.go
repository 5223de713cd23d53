package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvc-cli/internal/client"
)

func TestIndexSkipsDeletedCameras(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())

	gone := testCamera()
	gone["_id"] = "gone1"
	gone["uuid"] = "uuid-gone"
	gone["name"] = "Old Camera"
	gone["deleted"] = true
	nvr.addCamera(gone)

	c := nvr.client()
	cams, err := c.Index()
	require.NoError(t, err)
	require.Len(t, cams, 1)
	assert.Equal(t, "Front Door", cams[0].Name)
	assert.Equal(t, "abc123", cams[0].ID)
	assert.True(t, cams[0].Managed)
}

func TestNameToIdentifierVersionGated(t *testing.T) {
	for version, want := range map[string]string{
		"3.1.9": "uuid-1",
		"3.2.0": "abc123",
	} {
		nvr := newFakeNVR(t, version)
		nvr.addCamera(testCamera())
		c := nvr.client()

		id, err := c.NameToIdentifier("Front Door")
		require.NoError(t, err)
		assert.Equal(t, want, id, "version %s", version)
	}
}

func TestNameToIdentifierNotFound(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())
	c := nvr.client()

	_, err := c.NameToIdentifier("Back Door")
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestListZones(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())
	c := nvr.client()

	zones, err := c.ListZones(camID)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Zone 1", zones[0]["name"])
}

func TestPruneZonesKeepsFirst(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())
	c := nvr.client()

	require.NoError(t, c.PruneZones(camID))

	zones, err := c.ListZones(camID)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Zone 1", zones[0]["name"])
}

func TestDumpIsValidJSON(t *testing.T) {
	nvr := newFakeNVR(t, "3.2.0")
	nvr.addCamera(testCamera())
	c := nvr.client()

	out, err := c.Dump(camID)
	require.NoError(t, err)
	assert.Contains(t, out, `"ispSettings"`)
	assert.Contains(t, out, `"Front Door"`)
}
