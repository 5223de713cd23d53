package client

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Settings groups within a camera record.
const (
	groupTopLevel  = ""
	groupISP       = "ispSettings"
	groupOSD       = "osdSettings"
	groupRecording = "recordingSettings"
	groupDevice    = "deviceSettings"
)

// ChannelNames are the recording channels in server index order.
var ChannelNames = []string{"high", "medium", "low"}

// FieldAdapter translates between the CLI vocabulary for one camera
// setting and its wire representation inside a settings group.
//
// Get renders the current value from the fetched group. Set writes the
// wire encoding of value into the given map, or fails with
// InvalidArgumentError; a nil Set marks the field read-only. Set is
// applied to a scratch map first, so an invalid value never causes a
// request.
type FieldAdapter struct {
	Group string
	Get   func(group map[string]any) string
	Set   func(intended map[string]any, value string) error
}

// GetField fetches the camera record and renders one named field.
func (c *Client) GetField(identifier, name string) (string, error) {
	adapter, err := lookupField(name)
	if err != nil {
		return "", err
	}
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return "", err
	}
	return adapter.Get(settingsGroup(camera, adapter.Group)), nil
}

// SetField runs the read-modify-write cycle for one named field:
// validate the value, re-fetch the full record, merge the encoded
// field(s), PUT the whole record back, and report whether the
// response's group carries the intended values. That equality check is
// the only write confirmation the API offers.
//
// The API has no conditional-write primitive, so a concurrent external
// change between the fetch and the PUT is silently overwritten.
func (c *Client) SetField(identifier, name, value string) (bool, error) {
	adapter, err := lookupField(name)
	if err != nil {
		return false, err
	}
	if adapter.Set == nil {
		return false, fmt.Errorf("%s is read-only", name)
	}
	intended := map[string]any{}
	if err := adapter.Set(intended, value); err != nil {
		return false, err
	}
	return c.writeGroup(identifier, adapter.Group, intended)
}

// SetRecordMode sets the recording mode and, optionally, the recording
// channel in a single update.
func (c *Client) SetRecordMode(identifier, mode, channel string) (bool, error) {
	intended := map[string]any{}
	if err := encodeRecordMode(intended, mode); err != nil {
		return false, err
	}
	if channel != "" {
		idx := -1
		for i, name := range ChannelNames {
			if name == channel {
				idx = i
			}
		}
		if idx < 0 {
			return false, &InvalidArgumentError{Field: "recordchannel", Value: channel}
		}
		intended["channel"] = float64(idx)
	}
	return c.writeGroup(identifier, groupRecording, intended)
}

// GetPictureSettings returns the raw ispSettings group.
func (c *Client) GetPictureSettings(identifier string) (map[string]any, error) {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return nil, err
	}
	isp, ok := camera[groupISP].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("camera %s has no ispSettings", identifier)
	}
	return isp, nil
}

// SetPictureSettings applies a batch of raw isp values, coercing each
// to the type the record currently holds for that key. The updated
// group from the server is returned so the caller can report rejected
// values.
func (c *Client) SetPictureSettings(identifier string, settings map[string]string) (map[string]any, error) {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return nil, err
	}
	isp, ok := camera[groupISP].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("camera %s has no ispSettings", identifier)
	}
	for key, value := range settings {
		coerced, err := coerce(isp[key], key, value)
		if err != nil {
			return nil, err
		}
		isp[key] = coerced
	}
	updated, err := c.PutCamera(identifier, camera)
	if err != nil {
		return nil, err
	}
	result, _ := updated[groupISP].(map[string]any)
	return result, nil
}

// writeGroup is the shared write half of the accessor: fetch, merge,
// PUT, verify.
func (c *Client) writeGroup(identifier, group string, intended map[string]any) (bool, error) {
	camera, err := c.GetCamera(identifier)
	if err != nil {
		return false, err
	}
	target := settingsGroup(camera, group)
	for key, value := range intended {
		target[key] = value
	}
	updated, err := c.PutCamera(identifier, camera)
	if err != nil {
		return false, err
	}
	result := settingsGroup(updated, group)
	for key, value := range intended {
		if !reflect.DeepEqual(result[key], value) {
			return false, nil
		}
	}
	return true, nil
}

func settingsGroup(camera map[string]any, group string) map[string]any {
	if group == groupTopLevel {
		return camera
	}
	nested, ok := camera[group].(map[string]any)
	if !ok {
		nested = map[string]any{}
		camera[group] = nested
	}
	return nested
}

func lookupField(name string) (FieldAdapter, error) {
	adapter, ok := Fields[strings.ToLower(name)]
	if !ok {
		return FieldAdapter{}, &InvalidArgumentError{Field: "field", Value: name}
	}
	return adapter, nil
}

// FieldNames lists the registered field names in no particular order.
func FieldNames() []string {
	names := make([]string, 0, len(Fields))
	for name := range Fields {
		names = append(names, name)
	}
	return names
}

func coerce(current any, key, value string) (any, error) {
	switch current.(type) {
	case float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &InvalidArgumentError{Field: key, Value: value}
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, &InvalidArgumentError{Field: key, Value: value}
		}
		return b, nil
	case string, nil:
		return value, nil
	default:
		return value, nil
	}
}

// Fields is the adapter registry. Every getter/setter of the client is
// one entry here: a group path plus an encode/decode pair.
var Fields = map[string]FieldAdapter{
	// Top-level camera fields.
	"statusled":              boolWordField(groupTopLevel, "enableStatusLed"),
	"suggestedvideosettings": boolWordField(groupTopLevel, "enableSuggestedVideoSettings"),
	"micvolume":              numberField(groupTopLevel, "micVolume"),
	"model":                  readOnlyString(groupTopLevel, "model"),
	"mac":                    readOnlyString(groupTopLevel, "mac"),
	"platform":               readOnlyString(groupTopLevel, "platform"),
	"firmwareversion":        readOnlyString(groupTopLevel, "firmwareVersion"),
	"firmwarebuild":          readOnlyString(groupTopLevel, "firmwareBuild"),
	"ipaddress":              readOnlyString(groupTopLevel, "host"),
	"managed":                readOnlyBool(groupTopLevel, "managed"),
	"hasdefaultcredentials":  readOnlyBool(groupTopLevel, "hasDefaultCredentials"),

	// Image-processing settings.
	"brightness":     numberField(groupISP, "brightness"),
	"contrast":       numberField(groupISP, "contrast"),
	"hue":            numberField(groupISP, "hue"),
	"saturation":     numberField(groupISP, "saturation"),
	"sharpness":      numberField(groupISP, "sharpness"),
	"denoise":        numberField(groupISP, "denoise"),
	"wdr":            numberField(groupISP, "wdr"),
	"irbrightness":   numberField(groupISP, "irOnValBrightness"),
	"ircontrast":     numberField(groupISP, "irOnValContrast"),
	"irhue":          numberField(groupISP, "irOnValHue"),
	"irsaturation":   numberField(groupISP, "irOnValSaturation"),
	"irsharpness":    numberField(groupISP, "irOnValSharpness"),
	"irdenoise":      numberField(groupISP, "irOnValDenoise"),
	"externalirmode": onOffField(groupISP, "enableExternalIr"),
	"lensdistortion": onOffField(groupISP, "lensDistortionCorrection"),
	"aggressiveantiflicker": intEnumField(groupISP, "aggressiveAntiFlicker", map[string]float64{
		"disabled": 0,
		"enabled":  1,
	}),
	"irsensitivity": intEnumField(groupISP, "icrSensitivity", map[string]float64{
		"low":    0,
		"medium": 1,
		"high":   2,
	}),
	"aemode": {
		Group: groupISP,
		Get: func(group map[string]any) string {
			switch group["aemode"] {
			case "auto":
				return "normal"
			case "flick50":
				return "antiflicker50hz"
			case "flick60":
				return "antiflicker60hz"
			default:
				return "unknown"
			}
		},
		Set: func(intended map[string]any, value string) error {
			switch strings.ToLower(value) {
			case "normal":
				intended["aemode"] = "auto"
			case "antiflicker50hz":
				intended["aemode"] = "flick50"
			case "antiflicker60hz":
				intended["aemode"] = "flick60"
			default:
				return &InvalidArgumentError{Field: "aemode", Value: value}
			}
			return nil
		},
	},
	"irledmode": {
		Group: groupISP,
		Get: func(group map[string]any) string {
			mode, _ := group["irLedMode"].(string)
			level, _ := group["irLedLevel"].(float64)
			switch {
			case mode == "auto":
				return "auto"
			case mode == "manual" && level == 0:
				return "off"
			case mode == "manual" && level > 0:
				return "on"
			default:
				return "unknown"
			}
		},
		Set: func(intended map[string]any, value string) error {
			switch strings.ToLower(value) {
			case "off":
				intended["irLedLevel"] = float64(0)
				intended["irLedMode"] = "manual"
			case "on":
				intended["irLedLevel"] = float64(215)
				intended["irLedMode"] = "manual"
			case "auto":
				intended["irLedLevel"] = float64(215)
				intended["irLedMode"] = "auto"
			default:
				return &InvalidArgumentError{Field: "irledmode", Value: value}
			}
			return nil
		},
	},
	"orientation": {
		Group: groupISP,
		Get: func(group map[string]any) string {
			flip, _ := group["flip"].(float64)
			mirror, _ := group["mirror"].(float64)
			switch {
			case flip == 0 && mirror == 0:
				return "normal"
			case flip == 0 && mirror == 1:
				return "flip horizontally"
			case flip == 1 && mirror == 0:
				return "flip vertically"
			case flip == 1 && mirror == 1:
				return "flip both horizontally and vertically"
			default:
				return "unknown"
			}
		},
	},

	// On-screen display.
	"osddate": onOffField(groupOSD, "enableDate"),
	"osdlogo": onOffField(groupOSD, "enableLogo"),

	// Recording.
	"prepadding":  numberField(groupRecording, "prePaddingSecs"),
	"postpadding": numberField(groupRecording, "postPaddingSecs"),
	"recordmode": {
		Group: groupRecording,
		Get: func(group map[string]any) string {
			if full, _ := group["fullTimeRecordEnabled"].(bool); full {
				return "full"
			}
			if motion, _ := group["motionRecordEnabled"].(bool); motion {
				return "motion"
			}
			return "none"
		},
		Set: encodeRecordMode,
	},

	// Device settings.
	"timezone": readOnlyString(groupDevice, "timezone"),
}

func encodeRecordMode(intended map[string]any, value string) error {
	switch strings.ToLower(value) {
	case "none":
		intended["fullTimeRecordEnabled"] = false
		intended["motionRecordEnabled"] = false
	case "full":
		intended["fullTimeRecordEnabled"] = true
		intended["motionRecordEnabled"] = false
	case "motion":
		intended["fullTimeRecordEnabled"] = false
		intended["motionRecordEnabled"] = true
	default:
		return &InvalidArgumentError{Field: "recordmode", Value: value}
	}
	return nil
}

// numberField passes integer levels (brightness, padding seconds, ...)
// through as JSON numbers.
func numberField(group, key string) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			n, ok := g[key].(float64)
			if !ok {
				return "unknown"
			}
			return strconv.FormatFloat(n, 'f', -1, 64)
		},
		Set: func(intended map[string]any, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return &InvalidArgumentError{Field: key, Value: value}
			}
			intended[key] = float64(n)
			return nil
		},
	}
}

// onOffField maps on/off onto the 1/0 integers several isp and osd
// flags use on the wire.
func onOffField(group, key string) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			switch g[key] {
			case float64(0):
				return "off"
			case float64(1):
				return "on"
			default:
				return "unknown"
			}
		},
		Set: func(intended map[string]any, value string) error {
			switch strings.ToLower(value) {
			case "off":
				intended[key] = float64(0)
			case "on":
				intended[key] = float64(1)
			default:
				return &InvalidArgumentError{Field: key, Value: value}
			}
			return nil
		},
	}
}

// boolWordField maps true/false words onto JSON booleans.
func boolWordField(group, key string) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			b, ok := g[key].(bool)
			if !ok {
				return "unknown"
			}
			return strconv.FormatBool(b)
		},
		Set: func(intended map[string]any, value string) error {
			switch strings.ToLower(value) {
			case "true":
				intended[key] = true
			case "false":
				intended[key] = false
			default:
				return &InvalidArgumentError{Field: key, Value: value}
			}
			return nil
		},
	}
}

// intEnumField maps a fixed word vocabulary onto small integers.
func intEnumField(group, key string, vocab map[string]float64) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			n, ok := g[key].(float64)
			if !ok {
				return "unknown"
			}
			for word, code := range vocab {
				if code == n {
					return word
				}
			}
			return "unknown"
		},
		Set: func(intended map[string]any, value string) error {
			code, ok := vocab[strings.ToLower(value)]
			if !ok {
				return &InvalidArgumentError{Field: key, Value: value}
			}
			intended[key] = code
			return nil
		},
	}
}

func readOnlyString(group, key string) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			return fmt.Sprintf("%v", g[key])
		},
	}
}

func readOnlyBool(group, key string) FieldAdapter {
	return FieldAdapter{
		Group: group,
		Get: func(g map[string]any) string {
			b, ok := g[key].(bool)
			if !ok {
				return "unknown"
			}
			return strconv.FormatBool(b)
		},
	}
}
