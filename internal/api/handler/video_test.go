package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type stubVideoService struct {
	create       func(ctx context.Context, input usecase.CreateVideoInput) (*model.Video, error)
	getByMediaID func(ctx context.Context, mediaID string) (*model.Video, error)
	getBySlug    func(ctx context.Context, slug string) (*model.Video, error)
	edit         func(ctx context.Context, mediaID string, input usecase.EditVideoInput) (*model.Video, error)
	remove       func(ctx context.Context, mediaID string) error
	list         func(ctx context.Context, input usecase.ListVideosInput) (*usecase.VideoPage, error)
	registerView func(ctx context.Context, mediaID string) error
	addStar      func(ctx context.Context, mediaID string) (int64, error)
}

func (s *stubVideoService) Create(ctx context.Context, input usecase.CreateVideoInput) (*model.Video, error) {
	return s.create(ctx, input)
}

func (s *stubVideoService) GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error) {
	return s.getByMediaID(ctx, mediaID)
}

func (s *stubVideoService) GetBySlug(ctx context.Context, slug string) (*model.Video, error) {
	return s.getBySlug(ctx, slug)
}

func (s *stubVideoService) Edit(ctx context.Context, mediaID string, input usecase.EditVideoInput) (*model.Video, error) {
	return s.edit(ctx, mediaID, input)
}

func (s *stubVideoService) Delete(ctx context.Context, mediaID string) error {
	return s.remove(ctx, mediaID)
}

func (s *stubVideoService) List(ctx context.Context, input usecase.ListVideosInput) (*usecase.VideoPage, error) {
	return s.list(ctx, input)
}

func (s *stubVideoService) RegisterView(ctx context.Context, mediaID string) error {
	return s.registerView(ctx, mediaID)
}

func (s *stubVideoService) AddStar(ctx context.Context, mediaID string) (int64, error) {
	return s.addStar(ctx, mediaID)
}

func newVideoRouter(svc usecase.VideoService) http.Handler {
	h := NewVideoHandler(svc)
	r := chi.NewRouter()
	r.Post("/v1/videos", h.Create)
	r.Get("/v1/videos", h.List)
	r.Get("/v1/videos/{mediaID}", h.Get)
	r.Patch("/v1/videos/{mediaID}", h.Edit)
	r.Delete("/v1/videos/{mediaID}", h.Delete)
	return r
}

func TestVideoHandler_Create(t *testing.T) {
	svc := &stubVideoService{
		create: func(ctx context.Context, input usecase.CreateVideoInput) (*model.Video, error) {
			return model.NewVideo(input.UploaderID, input.MediaID)
		},
	}

	body := strings.NewReader(`{"uploader_id": 1, "media_id": "media-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/videos", body)
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var resp videoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MediaID != "media-1" || resp.UploaderID != 1 {
		t.Errorf("response = %+v, want media-1 by uploader 1", resp)
	}
}

func TestVideoHandler_Create_BadBody(t *testing.T) {
	svc := &stubVideoService{}
	req := httptest.NewRequest(http.MethodPost, "/v1/videos", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestVideoHandler_Get_NotFound(t *testing.T) {
	svc := &stubVideoService{
		getByMediaID: func(ctx context.Context, mediaID string) (*model.Video, error) {
			return nil, repository.ErrVideoNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/videos/unknown", nil)
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestVideoHandler_Edit_ImmutableTitle(t *testing.T) {
	svc := &stubVideoService{
		edit: func(ctx context.Context, mediaID string, input usecase.EditVideoInput) (*model.Video, error) {
			return nil, model.ErrTitleImmutable
		},
	}

	body := strings.NewReader(`{"title": "New Title"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/videos/media-1", body)
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestVideoHandler_List_Filters(t *testing.T) {
	var got usecase.ListVideosInput
	svc := &stubVideoService{
		list: func(ctx context.Context, input usecase.ListVideosInput) (*usecase.VideoPage, error) {
			got = input
			return &usecase.VideoPage{Videos: []*model.Video{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/videos?users=1,2,3&page_size=5", nil)
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.Uploader != nil {
		t.Errorf("Uploader = %v, want nil for users= filter", *got.Uploader)
	}
	if len(got.UploaderIDs) != 3 {
		t.Errorf("UploaderIDs = %v, want three entries", got.UploaderIDs)
	}
	if got.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", got.PageSize)
	}
}

func TestVideoHandler_List_BadFilter(t *testing.T) {
	svc := &stubVideoService{}
	req := httptest.NewRequest(http.MethodGet, "/v1/videos?user=abc", nil)
	rec := httptest.NewRecorder()
	newVideoRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
