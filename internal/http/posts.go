package http

import (
	"net/http"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
)

type createPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Picture string   `json:"picture"`
	Tags    []string `json:"tags"`
	Color   string   `json:"color"`
}

func (r *Router) handleCreatePost(w http.ResponseWriter, req *http.Request) {
	var in createPostRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Title == "" || in.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	post, err := r.store.CreatePost(req.Context(), &competitions.Post{
		Title:   in.Title,
		Content: in.Content,
		Picture: in.Picture,
		Tags:    in.Tags,
		Color:   in.Color,
	})
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (r *Router) handleListPosts(w http.ResponseWriter, req *http.Request) {
	list, err := r.store.ListPosts(req.Context())
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if list == nil {
		list = []competitions.Post{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (r *Router) handleGetPost(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	post, err := r.store.GetPost(req.Context(), id)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (r *Router) handleLikePost(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	post, err := r.store.LikePost(req.Context(), id)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
