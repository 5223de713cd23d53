package client_test

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"uvc-cli/internal/client"
)

const testAPIKey = "testkey"

// fakeNVR is an httptest-backed UniFi Video NVR with a mutable camera
// and alert store.
type fakeNVR struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	version  string
	cameras  map[string]map[string]any
	order    []string
	alerts   map[string]map[string]any
	sticky   map[string]bool // alert ids that refuse deletion
	dropISP  map[string]bool // isp keys whose updates the NVR ignores
	snapshot []byte
	gzipAll  bool
	requests int
}

func newFakeNVR(t *testing.T, version string) *fakeNVR {
	n := &fakeNVR{
		t:        t,
		version:  version,
		cameras:  map[string]map[string]any{},
		alerts:   map[string]map[string]any{},
		sticky:   map[string]bool{},
		dropISP:  map[string]bool{},
		snapshot: []byte("\xff\xd8fake-jpeg"),
	}
	n.srv = httptest.NewServer(http.HandlerFunc(n.handle))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNVR) addCamera(record map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := record["_id"].(string)
	n.cameras[id] = record
	n.order = append(n.order, id)
}

func (n *fakeNVR) addAlert(record map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts[record["_id"].(string)] = record
}

func (n *fakeNVR) requestCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requests
}

func (n *fakeNVR) camera(id string) map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cameras[id]
}

func (n *fakeNVR) handle(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests++

	if r.URL.Path == "/api/2.0/login" {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] == "admin" && creds["password"] == "secret" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusUnauthorized)
		}
		return
	}

	if r.URL.Query().Get("apiKey") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.URL.Path == "/api/2.0/bootstrap":
		n.writeData(w, []any{map[string]any{
			"systemInfo": map[string]any{"version": n.version},
		}})

	case r.URL.Path == "/api/2.0/camera":
		var cams []any
		for _, id := range n.order {
			cams = append(cams, n.cameras[id])
		}
		n.writeData(w, cams)

	case strings.HasPrefix(r.URL.Path, "/api/2.0/camera/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/2.0/camera/")
		record, ok := n.lookupCamera(id)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method == http.MethodPut {
			var updated map[string]any
			require.NoError(n.t, json.NewDecoder(r.Body).Decode(&updated))
			if len(n.dropISP) > 0 {
				oldISP, _ := record["ispSettings"].(map[string]any)
				newISP, _ := updated["ispSettings"].(map[string]any)
				for key := range n.dropISP {
					newISP[key] = oldISP[key]
				}
			}
			n.cameras[record["_id"].(string)] = updated
			record = updated
		}
		n.writeData(w, []any{record})

	case strings.HasPrefix(r.URL.Path, "/api/2.0/snapshot/camera/"):
		_, _ = w.Write(n.snapshot)

	case r.URL.Path == "/api/2.0/alert":
		var alerts []any
		for _, a := range n.alerts {
			if a["alertState"] != "deleted" {
				alerts = append(alerts, a)
			}
		}
		n.writeData(w, alerts)

	case strings.HasPrefix(r.URL.Path, "/api/2.0/alert/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/2.0/alert/")
		_, ok := n.alerts[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var updated map[string]any
		require.NoError(n.t, json.NewDecoder(r.Body).Decode(&updated))
		if !n.sticky[id] {
			n.alerts[id] = updated
		}
		n.writeData(w, []any{updated})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// lookupCamera resolves either identifier form, matching the NVR's
// acceptance of uuid (pre-3.2) and _id addressing.
func (n *fakeNVR) lookupCamera(id string) (map[string]any, bool) {
	if record, ok := n.cameras[id]; ok {
		return record, true
	}
	for _, record := range n.cameras {
		if record["uuid"] == id {
			return record, true
		}
	}
	return nil, false
}

func (n *fakeNVR) writeData(w http.ResponseWriter, data []any) {
	body, err := json.Marshal(map[string]any{"data": data})
	require.NoError(n.t, err)
	w.Header().Set("Content-Type", "application/json")
	if n.gzipAll {
		w.Header().Set("Content-Encoding", "gzip")
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write(body)
		_ = zw.Close()
		body = buf.Bytes()
	}
	_, _ = w.Write(body)
}

func (n *fakeNVR) config() client.Config {
	return configForURL(n.t, n.srv.URL)
}

func configForURL(t *testing.T, rawURL string) client.Config {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return client.Config{Host: u.Hostname(), Port: port, APIKey: testAPIKey}
}

func (n *fakeNVR) client() *client.Client {
	c, err := client.New(n.config())
	require.NoError(n.t, err)
	return c
}

func testCamera() map[string]any {
	return map[string]any{
		"_id":                          "abc123",
		"uuid":                         "uuid-1",
		"name":                         "Front Door",
		"deleted":                      false,
		"managed":                      true,
		"state":                        "CONNECTED",
		"model":                        "UVC Micro",
		"platform":                     "GEN2",
		"mac":                          "00:11:22:33:44:55",
		"firmwareVersion":              "4.0.1",
		"firmwareBuild":                "88",
		"hasDefaultCredentials":        false,
		"host":                         "192.168.1.50",
		"username":                     "admin",
		"enableStatusLed":              false,
		"enableSuggestedVideoSettings": false,
		"micVolume":                    float64(50),
		"ispSettings": map[string]any{
			"brightness":               float64(50),
			"contrast":                 float64(50),
			"hue":                      float64(50),
			"saturation":               float64(50),
			"sharpness":                float64(50),
			"denoise":                  float64(50),
			"wdr":                      float64(1),
			"irOnValBrightness":        float64(50),
			"irOnValContrast":          float64(50),
			"irOnValHue":               float64(50),
			"irOnValSaturation":        float64(50),
			"irOnValSharpness":         float64(50),
			"irOnValDenoise":           float64(50),
			"enableExternalIr":         float64(0),
			"lensDistortionCorrection": float64(0),
			"aggressiveAntiFlicker":    float64(0),
			"icrSensitivity":           float64(0),
			"aemode":                   "auto",
			"irLedMode":                "auto",
			"irLedLevel":               float64(215),
			"flip":                     float64(0),
			"mirror":                   float64(0),
		},
		"osdSettings": map[string]any{
			"enableDate": float64(1),
			"enableLogo": float64(1),
		},
		"recordingSettings": map[string]any{
			"fullTimeRecordEnabled": false,
			"motionRecordEnabled":   true,
			"channel":               float64(0),
			"prePaddingSecs":        float64(2),
			"postPaddingSecs":       float64(2),
		},
		"deviceSettings": map[string]any{
			"timezone": "America/New_York",
		},
		"zones": []any{
			map[string]any{"name": "Zone 1"},
			map[string]any{"name": "Zone 2"},
		},
	}
}
