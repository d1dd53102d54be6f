package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse - пишет JSON ответ с указанным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
