package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type VideoHandler struct {
	videos usecase.VideoService
}

func NewVideoHandler(videos usecase.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

type createVideoRequest struct {
	UploaderID int64  `json:"uploader_id"`
	MediaID    string `json:"media_id"`
}

type editVideoRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Publish     *bool    `json:"publish"`
	Tags        []string `json:"tags"`
}

type videoResponse struct {
	MediaID     string     `json:"media_id"`
	UploaderID  int64      `json:"uploader_id"`
	Title       string     `json:"title,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	TempLink    string     `json:"temp_link,omitempty"`
	IsPublished bool       `json:"is_published"`
	ViewCount   int64      `json:"view_count"`
	Stars       int64      `json:"stars"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toVideoResponse(v *model.Video) videoResponse {
	return videoResponse{
		MediaID:     v.MediaID,
		UploaderID:  v.UploaderID,
		Title:       v.Title,
		Slug:        v.Slug,
		Description: v.Description,
		TempLink:    v.TempLink,
		IsPublished: v.IsPublished,
		ViewCount:   v.ViewCount,
		Stars:       v.Stars,
		CreatedAt:   v.CreatedAt,
		PublishedAt: v.PublishedAt,
	}
}

type videoPageResponse struct {
	Videos     []videoResponse `json:"videos"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	video, err := h.videos.Create(r.Context(), usecase.CreateVideoInput{
		UploaderID: req.UploaderID,
		MediaID:    req.MediaID,
	})
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, toVideoResponse(video))
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.GetByMediaID(r.Context(), chi.URLParam(r, "mediaID"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, toVideoResponse(video))
}

func (h *VideoHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, toVideoResponse(video))
}

func (h *VideoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	video, err := h.videos.Edit(r.Context(), chi.URLParam(r, "mediaID"), usecase.EditVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Publish:     req.Publish,
		Tags:        req.Tags,
	})
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, toVideoResponse(video))
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.videos.Delete(r.Context(), chi.URLParam(r, "mediaID")); err != nil {
		DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List serves the published catalog. ?user= narrows to one uploader and
// includes their unpublished videos; ?users= narrows to published videos
// by several uploaders.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListVideosInput{
		Cursor:   r.URL.Query().Get("cursor"),
		PageSize: intQuery(r, "page_size"),
	}

	if raw := r.URL.Query().Get("user"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_request", "user must be an integer")
			return
		}
		input.Uploader = &id
	} else if raw := r.URL.Query().Get("users"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				Error(w, http.StatusBadRequest, "invalid_request", "users must be a comma-separated list of integers")
				return
			}
			input.UploaderIDs = append(input.UploaderIDs, id)
		}
	}

	page, err := h.videos.List(r.Context(), input)
	if err != nil {
		DomainError(w, err)
		return
	}

	resp := videoPageResponse{
		Videos:     make([]videoResponse, 0, len(page.Videos)),
		NextCursor: page.NextCursor,
	}
	for _, v := range page.Videos {
		resp.Videos = append(resp.Videos, toVideoResponse(v))
	}
	JSON(w, http.StatusOK, resp)
}

func (h *VideoHandler) RegisterView(w http.ResponseWriter, r *http.Request) {
	if err := h.videos.RegisterView(r.Context(), chi.URLParam(r, "mediaID")); err != nil {
		DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VideoHandler) AddStar(w http.ResponseWriter, r *http.Request) {
	stars, err := h.videos.AddStar(r.Context(), chi.URLParam(r, "mediaID"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]int64{"stars": stars})
}

func intQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
