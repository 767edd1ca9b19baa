package utils

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// Payload is the body of a successful reply; "success" is added on write.
type Payload map[string]interface{}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteSuccess renders {"success": true, ...payload}.
func WriteSuccess(w http.ResponseWriter, status int, payload Payload) {
	body := make(Payload, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	WriteJSON(w, status, body)
}

// WriteMessage renders {"success": true, "message": message}.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteSuccess(w, http.StatusOK, Payload{"message": message})
}

// WriteError renders {"success": false, "message": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// DecodeJSON decodes a request body into v.
func DecodeJSON(body io.Reader, v interface{}) error {
	return json.NewDecoder(body).Decode(v)
}

// DecodeJSONString decodes a JSON document held in a form field.
func DecodeJSONString(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}
