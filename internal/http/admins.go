package http

import (
	"errors"
	"net/http"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
)

// handleGetAdminByEmail resolves the signed-in identity into an admin
// document the dashboard uses as the owner reference.
func (r *Router) handleGetAdminByEmail(w http.ResponseWriter, req *http.Request) {
	email := req.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	admin, err := r.store.GetAdminByEmail(req.Context(), email)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*competitions.Admin{"data": admin})
}

type createAdminRequest struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}

func (r *Router) handleCreateAdmin(w http.ResponseWriter, req *http.Request) {
	var in createAdminRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Name == "" || in.Username == "" || in.Email == "" {
		writeError(w, http.StatusBadRequest, "name, username and email are required")
		return
	}

	admin, err := r.store.CreateAdmin(req.Context(), in.Name, in.Username, in.Email, in.Bio, in.ProfilePicture)
	if err != nil {
		if errors.Is(err, competitions.ErrDuplicateAdmin) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		r.serverError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}
