// Package handlers wires the quotation screens and document endpoints
// onto the PocketBase router.
package handlers

import (
	"encoding/json"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// SetToast sets the HX-Trigger response header to show a toast
// notification on the client via HTMX. An existing HX-Trigger value is
// merged rather than overwritten.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := map[string]any{
		"showToast": map[string]string{
			"message": message,
			"type":    toastType,
		},
	}

	merged := toast
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		var current map[string]any
		if err := json.Unmarshal([]byte(existing), &current); err == nil {
			current["showToast"] = toast["showToast"]
			merged = current
		} else {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}
