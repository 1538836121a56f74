package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// encodeFailureBody matches the webhook response shape so senders always
// get a parsable body back.
const encodeFailureBody = `{"success":false,"error":"Internal Server Error"}`

// WriteJSON writes data as the JSON body of a response with statusCode and
// returns the number of body bytes written.
//
// Handlers pass it the hub's response models:
//
//	WriteJSON(w, models.WebhookResponse{Success: true}, http.StatusOK)
//	WriteJSON(w, models.WebhookResponse{Error: "Service not found"}, http.StatusNotFound)
//	WriteJSON(w, result, http.StatusOK) // models.TransportResult from a gateway call
//
// When data cannot be encoded nothing of it is sent. The response becomes a
// 500 with a generic webhook-shaped body and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureBody))
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
