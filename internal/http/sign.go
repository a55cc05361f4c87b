package http

import (
	"net/http"

	"github.com/yashgoel75/kavyalok-admin/internal/auth"
)

type signRequest struct {
	Folder string `json:"folder"`
}

// handleSignCompetitionCovers hands an authenticated dashboard user a
// signed credential for a direct upload to the image host. The asset
// URL only reaches the competition document on the next save.
func (r *Router) handleSignCompetitionCovers(w http.ResponseWriter, req *http.Request) {
	token, err := auth.BearerToken(req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if _, err := r.verifier.Verify(token); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var in signRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Folder == "" {
		writeError(w, http.StatusBadRequest, "folder is required")
		return
	}

	writeJSON(w, http.StatusOK, r.signer.SignFolder(in.Folder))
}
