package stylesense

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stylesense/stylesense/domain"
)

// Upload limits enforced by the backend.
const (
	MaxImageBytes = 5 << 20
)

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// analysisService implements app.AnalysisService.
type analysisService struct {
	client *Client
}

// NewAnalysisService creates an AnalysisService backed by the API.
func NewAnalysisService(client *Client) *analysisService {
	return &analysisService{client: client}
}

func (s *analysisService) Analyze(ctx context.Context, imagePath, occasion string) (domain.Analysis, error) {
	ext := strings.ToLower(filepath.Ext(imagePath))
	if !allowedImageExts[ext] {
		return domain.Analysis{}, fmt.Errorf("unsupported image type %q: use jpg, jpeg or png", ext)
	}

	req, err := s.client.request(ctx, true)
	if err != nil {
		return domain.Analysis{}, err
	}
	req.SetFile("file", imagePath)
	if strings.TrimSpace(occasion) != "" {
		req.SetFormData(map[string]string{"occasion": occasion})
	}

	var out struct {
		Data apiAnalysis `json:"data"`
	}
	if err := s.client.execute(req, http.MethodPost, "/api/outfit/analyze", nil, &out); err != nil {
		return domain.Analysis{}, fmt.Errorf("analyzing outfit: %w", err)
	}
	return mapAnalysis(out.Data), nil
}

func (s *analysisService) Get(ctx context.Context, id string) (domain.Analysis, error) {
	var out struct {
		Data apiAnalysis `json:"data"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/outfit/"+url.PathEscape(id), nil, &out); err != nil {
		return domain.Analysis{}, fmt.Errorf("fetching analysis: %w", err)
	}
	return mapAnalysis(out.Data), nil
}

func (s *analysisService) List(ctx context.Context, limit, skip int) ([]domain.Analysis, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var out struct {
		Data struct {
			Analyses []apiAnalysis `json:"analyses"`
			Total    int           `json:"total"`
		} `json:"data"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/outfit/user/all?"+q.Encode(), nil, &out); err != nil {
		return nil, 0, fmt.Errorf("listing analyses: %w", err)
	}
	list := make([]domain.Analysis, 0, len(out.Data.Analyses))
	for _, a := range out.Data.Analyses {
		list = append(list, mapAnalysis(a))
	}
	return list, out.Data.Total, nil
}

func (s *analysisService) Delete(ctx context.Context, id string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/api/outfit/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	return nil
}

func (s *analysisService) TogglePublic(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	path := fmt.Sprintf("/api/outfit/%s/toggle-public", url.PathEscape(id))
	if err := s.client.do(ctx, http.MethodPost, path, tags, nil); err != nil {
		return fmt.Errorf("toggling visibility: %w", err)
	}
	return nil
}
