package stylesense

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stylesense/stylesense/domain"
)

// communityService implements app.CommunityService.
type communityService struct {
	client *Client
}

// NewCommunityService creates a CommunityService backed by the API.
func NewCommunityService(client *Client) *communityService {
	return &communityService{client: client}
}

func (s *communityService) Feed(ctx context.Context, limit, skip int) ([]domain.Post, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var out struct {
		Data []apiAnalysis `json:"data"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/outfit/community/feed?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching community feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(out.Data))
	for _, a := range out.Data {
		posts = append(posts, mapPost(a))
	}
	return posts, nil
}

func (s *communityService) React(ctx context.Context, kind domain.Reaction, postID string) error {
	if kind != domain.ReactionLike && kind != domain.ReactionDislike {
		return fmt.Errorf("unknown reaction %q", kind)
	}
	path := fmt.Sprintf("/api/outfit/%s/%s", url.PathEscape(postID), kind)
	if err := s.client.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("sending %s: %w", kind, err)
	}
	return nil
}

// PostComment returns a nil comment with a nil error when the server accepted
// the comment but its reply cannot be read as a comment record.
func (s *communityService) PostComment(ctx context.Context, postID, text string) (*domain.Comment, error) {
	path := fmt.Sprintf("/api/outfit/%s/comment", url.PathEscape(postID))
	raw, err := s.client.doRaw(ctx, http.MethodPost, path, map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("posting comment: %w", err)
	}
	return decodeComment(raw), nil
}

func decodeComment(raw []byte) *domain.Comment {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &envelope) != nil || len(envelope.Data) == 0 {
		return nil
	}
	var ac apiComment
	if json.Unmarshal(envelope.Data, &ac) != nil || ac.Text == "" {
		return nil
	}
	c := mapComment(ac)
	return &c
}
