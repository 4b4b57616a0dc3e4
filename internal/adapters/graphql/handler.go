package graphql

import (
	"encoding/json"
	"net/http"
	"strings"
)

const maxBodyBytes = 8 << 20

// ServeHTTP accepts POST with a JSON body and GET with query parameters.
// Execution errors are reported inside the 200 response, as GraphQL clients
// expect; only undecodable requests get a 4xx status.
func (s *Schema) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				writeRequestError(w, http.StatusBadRequest, "variables must be a JSON object")
				return
			}
		}
	case http.MethodPost:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeRequestError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeRequestError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeRequestError(w, http.StatusBadRequest, "query is required")
		return
	}

	result := s.Execute(r.Context(), req)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func writeRequestError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]any{{"message": message}},
	})
}
