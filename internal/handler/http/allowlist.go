package http

import (
	"encoding/json"
	"net/http"

	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/models"
)

// checkAllowlist runs the allowlist against a URL without fetching it.
// GET /api/allowlist/check?url=<absolute image URL>
func (h *Handler) checkAllowlist(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing `url` query parameter")
		return
	}

	verdict, err := h.services.ImageService.Check(r.Context(), rawURL)
	if err != nil {
		log.Err(err).Str("func", "*Handler.checkAllowlist").Str("url", rawURL).Msg("error checking allowlist")
		writeError(w, statusFromError(err), err.Error())
		return
	}

	response := models.AllowlistCheckResponse{
		URL:           rawURL,
		Allowed:       verdict.Allowed,
		MatchedDomain: verdict.MatchedDomain,
	}
	if verdict.MatchedPattern >= 0 {
		matched := verdict.MatchedPattern
		response.MatchedPattern = &matched
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response); err != nil {
		log.Err(err).Str("func", "*Handler.checkAllowlist").Msg("error encoding allowlist response")
	}
}
