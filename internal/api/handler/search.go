package handler

import (
	"net/http"
	"strings"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type SearchHandler struct {
	search usecase.SearchService
}

func NewSearchHandler(search usecase.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchResultResponse struct {
	Video        videoResponse `json:"video"`
	MatchedWords int           `json:"matched_words,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
}

type searchPageResponse struct {
	Results    []searchResultResponse `json:"results"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// Search dispatches on exactly one of ?q= (word search) or ?tags=
// (tag search). Requests carrying both or neither are rejected.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	tags := r.URL.Query().Get("tags")
	cursor := r.URL.Query().Get("cursor")
	pageSize := intQuery(r, "page_size")

	var (
		page *usecase.SearchPage
		err  error
	)
	switch {
	case query != "" && tags != "":
		Error(w, http.StatusBadRequest, "invalid_request", "q and tags are mutually exclusive")
		return
	case query != "":
		page, err = h.search.SearchByWords(r.Context(), query, cursor, pageSize)
	case tags != "":
		page, err = h.search.SearchByTags(r.Context(), strings.Split(tags, ","), cursor, pageSize)
	default:
		Error(w, http.StatusBadRequest, "invalid_request", "either q or tags is required")
		return
	}
	if err != nil {
		DomainError(w, err)
		return
	}

	resp := searchPageResponse{
		Results:    make([]searchResultResponse, 0, len(page.Results)),
		NextCursor: page.NextCursor,
	}
	for _, result := range page.Results {
		resp.Results = append(resp.Results, searchResultResponse{
			Video:        toVideoResponse(result.Video),
			MatchedWords: result.MatchedWords,
			Tags:         result.Tags,
		})
	}
	JSON(w, http.StatusOK, resp)
}
