package models

// Alert is the list view of an NVR alert record. Deletion re-submits
// the raw record with alertState set to "deleted", so the raw map is
// what the client operates on; this struct is for display only.
type Alert struct {
	ID        string
	Timestamp int64
	Type      string
	State     string
}

// AlertFromMap extracts the display fields from a raw alert record.
func AlertFromMap(m map[string]any) Alert {
	ts, _ := m["timestamp"].(float64)
	return Alert{
		ID:        stringField(m, "_id"),
		Timestamp: int64(ts),
		Type:      stringField(m, "alertType"),
		State:     stringField(m, "alertState"),
	}
}
