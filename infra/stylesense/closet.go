package stylesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/stylesense/stylesense/domain"
)

// closetService implements app.ClosetService.
type closetService struct {
	client *Client
}

// NewClosetService creates a ClosetService backed by the API.
func NewClosetService(client *Client) *closetService {
	return &closetService{client: client}
}

func (s *closetService) List(ctx context.Context) ([]domain.ClosetItem, error) {
	var out []apiClosetItem
	if err := s.client.do(ctx, http.MethodGet, "/api/closet/", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching closet: %w", err)
	}
	items := make([]domain.ClosetItem, 0, len(out))
	for _, it := range out {
		items = append(items, mapClosetItem(it))
	}
	return items, nil
}

func (s *closetService) Add(ctx context.Context, item domain.ClosetItem) (domain.ClosetItem, error) {
	if err := validateClosetItem(item); err != nil {
		return domain.ClosetItem{}, err
	}
	var out apiClosetItem
	if err := s.client.do(ctx, http.MethodPost, "/api/closet/", toAPIClosetItem(item), &out); err != nil {
		return domain.ClosetItem{}, fmt.Errorf("adding closet item: %w", err)
	}
	return mapClosetItem(out), nil
}

func (s *closetService) Update(ctx context.Context, item domain.ClosetItem) (domain.ClosetItem, error) {
	if item.ID == "" {
		return domain.ClosetItem{}, errors.New("closet item has no ID")
	}
	if err := validateClosetItem(item); err != nil {
		return domain.ClosetItem{}, err
	}
	var out apiClosetItem
	if err := s.client.do(ctx, http.MethodPatch, "/api/closet/"+url.PathEscape(item.ID), toAPIClosetItem(item), &out); err != nil {
		return domain.ClosetItem{}, fmt.Errorf("updating closet item: %w", err)
	}
	return mapClosetItem(out), nil
}

func (s *closetService) Delete(ctx context.Context, id string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/api/closet/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting closet item: %w", err)
	}
	return nil
}

func validateClosetItem(item domain.ClosetItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" || len(name) > 100 {
		return errors.New("closet item name must be 1-100 characters")
	}
	if !slices.Contains(domain.ClosetCategories, item.Category) {
		return fmt.Errorf("unknown closet category %q", item.Category)
	}
	if strings.TrimSpace(item.Color) == "" {
		return errors.New("closet item color is required")
	}
	return nil
}

func toAPIClosetItem(item domain.ClosetItem) apiClosetItem {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return apiClosetItem{
		Name:        strings.TrimSpace(item.Name),
		Category:    item.Category,
		Color:       strings.TrimSpace(item.Color),
		Description: item.Description,
		Tags:        tags,
	}
}
