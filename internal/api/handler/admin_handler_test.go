package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cliplink/affiliate-system/internal/core/domain"
	"github.com/cliplink/affiliate-system/internal/core/ports"
)

type stubRewardService struct {
	generateFn func(ctx context.Context, in ports.GenerateLinkInput) (*domain.AffiliateLink, error)
	creditFn   func(ctx context.Context, in ports.CreditEntriesInput) (*domain.User, error)
	dashFn     func(ctx context.Context, userID string) (*ports.DashboardResult, error)
	trackFn    func(ctx context.Context, in ports.TrackClickInput) (string, error)
}

func (s *stubRewardService) GenerateLink(ctx context.Context, in ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
	return s.generateFn(ctx, in)
}

func (s *stubRewardService) CreditEntries(ctx context.Context, in ports.CreditEntriesInput) (*domain.User, error) {
	return s.creditFn(ctx, in)
}

func (s *stubRewardService) Dashboard(ctx context.Context, userID string) (*ports.DashboardResult, error) {
	return s.dashFn(ctx, userID)
}

func (s *stubRewardService) TrackClick(ctx context.Context, in ports.TrackClickInput) (string, error) {
	return s.trackFn(ctx, in)
}

func TestAdminHandler_GenerateLink_Success(t *testing.T) {
	stub := &stubRewardService{
		generateFn: func(_ context.Context, in ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
			if in.ActingRole != domain.RoleAdmin {
				t.Fatalf("acting role not forwarded: %s", in.ActingRole)
			}
			if in.VideoID != "vid123" || in.TargetUserID != "user_9" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.AffiliateLink{ID: "link_1", OwnerID: in.TargetUserID, VideoID: in.VideoID, DestinationURL: in.DestinationURL}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/admin/links",
		`{"video_id":"vid123","destination_url":"https://example.com/watch","target_user_id":"user_9"}`)
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	if err := handler.GenerateLink(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var link map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &link); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if link["id"] != "link_1" || link["owner_id"] != "user_9" {
		t.Fatalf("unexpected link payload: %+v", link)
	}
}

func TestAdminHandler_GenerateLink_MissingAuth(t *testing.T) {
	stub := &stubRewardService{
		generateFn: func(context.Context, ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/links",
		`{"video_id":"vid123","destination_url":"https://example.com/watch","target_user_id":"user_9"}`)

	err := handler.GenerateLink(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAdminHandler_GenerateLink_ValidationRejected(t *testing.T) {
	stub := &stubRewardService{
		generateFn: func(context.Context, ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/links",
		`{"video_id":"","destination_url":"not a url","target_user_id":"user_9"}`)
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	err := handler.GenerateLink(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAdminHandler_CreditEntries_Success(t *testing.T) {
	stub := &stubRewardService{
		creditFn: func(_ context.Context, in ports.CreditEntriesInput) (*domain.User, error) {
			if in.Amount != 5 || in.TargetUserID != "user_9" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: in.TargetUserID, Entries: 5}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/admin/entries",
		`{"target_user_id":"user_9","amount":5}`)
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	if err := handler.CreditEntries(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["entries"] != float64(5) {
		t.Fatalf("unexpected entries: %v", user["entries"])
	}
}

func TestAdminHandler_CreditEntries_NegativeAmountRejected(t *testing.T) {
	stub := &stubRewardService{
		creditFn: func(context.Context, ports.CreditEntriesInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/entries",
		`{"target_user_id":"user_9","amount":-5}`)
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	err := handler.CreditEntries(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAdminHandler_CreditEntries_TargetMissingPropagates(t *testing.T) {
	stub := &stubRewardService{
		creditFn: func(context.Context, ports.CreditEntriesInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/entries",
		`{"target_user_id":"missing","amount":5}`)
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	if err := handler.CreditEntries(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDashboardHandler_Get(t *testing.T) {
	stub := &stubRewardService{
		dashFn: func(_ context.Context, userID string) (*ports.DashboardResult, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &ports.DashboardResult{
				User:  &domain.User{ID: userID, Username: "alice", Level: 1, LinkIDs: []string{"link_1"}},
				Links: []*domain.AffiliateLink{{ID: "link_1", OwnerID: userID, VideoID: "vid123"}},
			}, nil
		},
	}
	handler := NewDashboardHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/dashboard", "")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	links, ok := resp["links"].([]any)
	if !ok || len(links) != 1 {
		t.Fatalf("expected one resolved link, got %v", resp["links"])
	}
}

func TestTrackHandler_Redirect(t *testing.T) {
	stub := &stubRewardService{
		trackFn: func(_ context.Context, in ports.TrackClickInput) (string, error) {
			if in.LinkID != "link_1" {
				t.Fatalf("unexpected link id: %s", in.LinkID)
			}
			return "https://example.com/watch", nil
		},
	}
	handler := NewTrackHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/l/link_1", "")
	c.SetParamNames("id")
	c.SetParamValues("link_1")

	if err := handler.Redirect(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://example.com/watch" {
		t.Fatalf("unexpected redirect location: %s", loc)
	}
}

func TestTrackHandler_Redirect_LinkMissing(t *testing.T) {
	stub := &stubRewardService{
		trackFn: func(context.Context, ports.TrackClickInput) (string, error) {
			return "", domain.ErrLinkNotFound
		},
	}
	handler := NewTrackHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/l/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Redirect(c); !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
