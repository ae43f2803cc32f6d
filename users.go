package polaris

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polarisapp/client-go/internal/transport"
)

// UsersService wraps the user-profile endpoints.
type UsersService struct {
	client *Client
}

// Profile is a user profile record.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Preferences are per-user settings.
type Preferences struct {
	Theme         string `json:"theme,omitempty"`
	Locale        string `json:"locale,omitempty"`
	EmailOptIn    bool   `json:"emailOptIn"`
	Notifications bool   `json:"notifications"`
}

// UpdateProfileParams are the mutable profile fields. Nil fields are left
// unchanged.
type UpdateProfileParams struct {
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// ListUsersParams control pagination of the user listing.
type ListUsersParams struct {
	Cursor string
	Limit  int
}

// GetProfile returns the authenticated user's profile.
func (s *UsersService) GetProfile(ctx context.Context) (*Envelope[Profile], error) {
	return transport.Call[Profile](ctx, s.client.transport, http.MethodGet, "/v1/users/me", nil, nil)
}

// GetUser returns a user profile by id.
func (s *UsersService) GetUser(ctx context.Context, userID string) (*Envelope[Profile], error) {
	path := fmt.Sprintf("/v1/users/%s", url.PathEscape(userID))
	return transport.Call[Profile](ctx, s.client.transport, http.MethodGet, path, nil, nil)
}

// UpdateProfile patches the authenticated user's profile.
func (s *UsersService) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Envelope[Profile], error) {
	return transport.Call[Profile](ctx, s.client.transport, http.MethodPatch, "/v1/users/me", params, nil)
}

// GetPreferences returns the authenticated user's preferences.
func (s *UsersService) GetPreferences(ctx context.Context) (*Envelope[Preferences], error) {
	return transport.Call[Preferences](ctx, s.client.transport, http.MethodGet, "/v1/users/me/preferences", nil, nil)
}

// UpdatePreferences replaces the authenticated user's preferences.
func (s *UsersService) UpdatePreferences(ctx context.Context, prefs Preferences) (*Envelope[Preferences], error) {
	return transport.Call[Preferences](ctx, s.client.transport, http.MethodPut, "/v1/users/me/preferences", prefs, nil)
}

// ListUsers returns one page of user profiles.
func (s *UsersService) ListUsers(ctx context.Context, params ListUsersParams) (*Envelope[Page[Profile]], error) {
	q := url.Values{}
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	path := "/v1/users"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return transport.Call[Page[Profile]](ctx, s.client.transport, http.MethodGet, path, nil, nil)
}

// DeleteAccount deletes the authenticated account.
func (s *UsersService) DeleteAccount(ctx context.Context) (*Envelope[Ack], error) {
	return transport.Call[Ack](ctx, s.client.transport, http.MethodDelete, "/v1/users/me", nil, nil)
}
