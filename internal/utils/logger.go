package utils

import (
	"log"
	"strings"
)

// LogEvent emite una línea de log por módulo/acción, con request_id.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
