package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvc-cli/pkg/models"
)

func TestParseVersion(t *testing.T) {
	v, err := models.ParseVersion("3.2.0")
	require.NoError(t, err)
	assert.Equal(t, models.Version{Major: 3, Minor: 2, Patch: 0}, v)
	assert.Equal(t, "3.2.0", v.String())
}

func TestParseVersionNonNumericPatch(t *testing.T) {
	v, err := models.ParseVersion("3.1.0b1")
	require.NoError(t, err)
	assert.Equal(t, models.Version{Major: 3, Minor: 1, Patch: 0}, v)
}

func TestParseVersionGarbage(t *testing.T) {
	_, err := models.ParseVersion("latest")
	require.Error(t, err)
}

func TestAtLeastBoundary(t *testing.T) {
	cases := []struct {
		v    models.Version
		want bool
	}{
		{models.Version{3, 0, 0}, false},
		{models.Version{3, 1, 9}, false},
		{models.Version{3, 2, 0}, true},
		{models.Version{3, 2, 1}, true},
		{models.Version{4, 0, 0}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.AtLeast(3, 2, 0), tc.v.String())
	}
}

func TestCameraSummaryStatus(t *testing.T) {
	cases := []struct {
		cam  models.CameraSummary
		want string
	}{
		{models.CameraSummary{Managed: false, State: "CONNECTED"}, "new"},
		{models.CameraSummary{Managed: true, State: "CONNECTED"}, "online"},
		{models.CameraSummary{Managed: true, State: "DISCONNECTED"}, "offline"},
		{models.CameraSummary{Managed: true, State: "FIRMWARE_OUTDATED"}, "outdated"},
		{models.CameraSummary{Managed: true, State: "UPGRADING"}, "upgrading"},
		{models.CameraSummary{Managed: true, State: "REBOOTING"}, "unknown:REBOOTING"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.cam.Status())
	}
}
