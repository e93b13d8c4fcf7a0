package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
)

// bookmarkResponse is the wire shape of a bookmark: createdAt in epoch
// milliseconds and userVote null when there is no vote.
type bookmarkResponse struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"`
	Likes       int      `json:"likes"`
	Dislikes    int      `json:"dislikes"`
	UserVote    *string  `json:"userVote"`
}

func toResponse(b model.Bookmark) bookmarkResponse {
	resp := bookmarkResponse{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        b.Tags,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		Likes:       b.Likes,
		Dislikes:    b.Dislikes,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if b.UserVote != model.VoteNone {
		v := b.UserVote.String()
		resp.UserVote = &v
	}
	return resp
}

func toResponses(bms []model.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, len(bms))
	for i, b := range bms {
		out[i] = toResponse(b)
	}
	return out
}

type createRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type voteRequest struct {
	Vote string `json:"vote"`
}

// ListBookmarks serves the bookmarks in ?category= (default all) whose
// searchable fields contain ?q=.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := search.NewView()
		if c := r.URL.Query().Get("category"); c != "" {
			view.Category = c
		}
		view.Query = r.URL.Query().Get("q")

		writeJSON(w, http.StatusOK, toResponses(d.Library.View(view)))
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := d.Library.Get(chi.URLParam(r, "id"))
		if b == nil {
			writeError(w, http.StatusNotFound, model.ErrBookmarkNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, toResponse(*b))
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		url := strings.TrimSpace(req.URL)
		if url == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		added, err := d.Library.Add(r.Context(), model.NewBookmarkParams{
			URL:         url,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
		})
		if err := persisted(w, err); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(added))
	}
}

// DeleteBookmark always answers 204. Deleting an unknown id is a no-op.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		deleted, err := d.Library.Delete(r.Context(), id)
		if err := persisted(w, err); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !deleted {
			d.Logger.Debug("delete of unknown bookmark", logger.String("id", id))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func VoteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req voteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		vote, err := model.ParseVote(req.Vote)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := d.Library.Vote(r.Context(), chi.URLParam(r, "id"), vote)
		if errors.Is(err, model.ErrBookmarkNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err := persisted(w, err); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toResponse(updated))
	}
}

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Library.Categories())
	}
}
