package client

import (
	"fmt"
	"net/http"
)

const alertPath = "/api/2.0/alert"

// ListAlerts returns the raw alert records in the NVR's alert table.
// Records stay untyped maps because deletion re-submits them whole.
func (c *Client) ListAlerts() ([]map[string]any, error) {
	return c.request(http.MethodGet, alertPath, nil)
}

// DeleteAlert marks one alert deleted by re-submitting the full record
// with alertState set to "deleted". The API has no delete verb; the
// echoed _id is the only confirmation.
func (c *Client) DeleteAlert(alert map[string]any) (bool, error) {
	id, _ := alert["_id"].(string)
	if id == "" {
		return false, fmt.Errorf("alert record has no _id")
	}
	alert["alertState"] = "deleted"
	data, err := c.request(http.MethodPut, alertPath+"/"+id, alert)
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	echoed, _ := data[0]["_id"].(string)
	return echoed == id, nil
}

// DeleteAllAlerts deletes every listed alert, then re-lists and
// returns the number of stragglers. Deletion is not transactional: a
// mid-batch failure leaves a partially-deleted table, and a re-run
// catches the rest.
func (c *Client) DeleteAllAlerts() (int, error) {
	alerts, err := c.ListAlerts()
	if err != nil {
		return 0, err
	}
	for _, alert := range alerts {
		if _, err := c.DeleteAlert(alert); err != nil {
			return 0, err
		}
	}
	remaining, err := c.ListAlerts()
	if err != nil {
		return 0, err
	}
	return len(remaining), nil
}
