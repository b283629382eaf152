package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/internal/service"
	"github.com/avelichko/imagegate/internal/store"
	"github.com/avelichko/imagegate/models"
)

var errorStatusMap = map[error]int{
	allowlist.ErrInvalidImageURL: http.StatusBadRequest,

	service.ErrSourceNotAllowed: http.StatusForbidden,
	service.ErrUpstreamFetch:    http.StatusBadGateway,
	service.ErrUpstreamStatus:   http.StatusBadGateway,

	store.ErrCacheMiss: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}
