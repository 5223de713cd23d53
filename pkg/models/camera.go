package models

// CameraSummary is the per-camera row returned by the camera index.
// The full camera record stays an untyped map so that read-modify-write
// updates round-trip every server field; this is just the list view.
type CameraSummary struct {
	ID      string
	UUID    string
	Name    string
	State   string
	Managed bool
}

// CameraSummaryFromMap extracts the index fields from a raw camera
// record.
func CameraSummaryFromMap(m map[string]any) CameraSummary {
	return CameraSummary{
		ID:      stringField(m, "_id"),
		UUID:    stringField(m, "uuid"),
		Name:    stringField(m, "name"),
		State:   stringField(m, "state"),
		Managed: boolField(m, "managed"),
	}
}

// Status maps the raw connection state onto the short status words
// shown in camera listings.
func (c CameraSummary) Status() string {
	if !c.Managed {
		return "new"
	}
	switch c.State {
	case "FIRMWARE_OUTDATED":
		return "outdated"
	case "UPGRADING":
		return "upgrading"
	case "DISCONNECTED":
		return "offline"
	case "CONNECTED":
		return "online"
	default:
		return "unknown:" + c.State
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
