package http

import (
	"net/http"
	"strconv"

	"github.com/avelichko/imagegate/internal/logger"
)

// serveImage proxies a remote image through the gateway.
// GET /image?url=<absolute image URL>
func (h *Handler) serveImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing `url` query parameter")
		return
	}

	entry, data, err := h.services.ImageService.Fetch(r.Context(), rawURL)
	if err != nil {
		log.Err(err).Str("func", "*Handler.serveImage").Str("url", rawURL).Msg("error serving image")
		writeError(w, statusFromError(err), err.Error())
		return
	}

	if entry.ContentType != "" {
		w.Header().Set("Content-Type", entry.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(entry.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		log.Err(err).Str("func", "*Handler.serveImage").Msg("error writing image response")
	}
}
