package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akolanti/GoPDFChat/internal/adapter"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// the status is already written, only log it
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message))
}

// writeCoreError maps err to a status and a client message, the detail stays in the log.
func writeCoreError(w http.ResponseWriter, err error) {
	status, body := adapter.ToErrorResponse(err)
	writeJsonResponse(w, status, body)
}
