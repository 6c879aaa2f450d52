package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"student-rank/models"
)

func RespondWithError(w http.ResponseWriter, status int, error models.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(error); err != nil {
		log.WithError(err).Warn("failed to write error response")
	}
}

func ResponseJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// QueryInt reads an integer query parameter. Missing or non-numeric values
// yield def.
func QueryInt(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// MaskNumber keeps the first visible characters and stars out the rest.
func MaskNumber(s string, visible int) string {
	if visible < 0 {
		visible = 0
	}
	runes := []rune(s)
	if len(runes) <= visible {
		return s
	}
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible)
}
