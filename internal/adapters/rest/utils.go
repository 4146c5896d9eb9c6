package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func parseString(query url.Values, key string) string {
	return strings.TrimSpace(query.Get(key))
}

// parseInt возвращает nil, если параметра нет; ok == false - параметр есть, но не число
func parseInt(query url.Values, key string) (value *int64, ok bool) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// parsePositiveInt: отсутствующее, нечисловое или неположительное значение дает def
func parsePositiveInt(query url.Values, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(query.Get(key)))
	if err != nil || v < 1 {
		return def
	}
	return v
}
