package polaris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// authServer fakes the auth endpoints and records the requests it saw.
func authServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/auth/signup", "/v1/auth/signin", "/v1/auth/refresh":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"userId":       "u1",
					"accessToken":  "access-1",
					"refreshToken": "refresh-1",
					"expiresIn":    3600,
				},
				"meta": map[string]any{"requestId": "r1", "timestamp": "2024-01-01T00:00:00Z"},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"message": "ok"},
				"meta":    map[string]any{"requestId": "r1", "timestamp": "2024-01-01T00:00:00Z"},
			})
		}
	}))
	return srv, &seen
}

func newClientFor(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(WithEnvironment(EnvDevelopment), WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestAuth_SignUp(t *testing.T) {
	srv, seen := authServer(t)
	defer srv.Close()
	client := newClientFor(t, srv.URL)

	env, err := client.Auth().SignUp(context.Background(), SignUpParams{
		Email:    "new@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if !env.Success || env.Data.UserID != "u1" {
		t.Errorf("env = %+v", env)
	}
	if (*seen)[0] != "POST /v1/auth/signup" {
		t.Errorf("request = %s", (*seen)[0])
	}
}

func TestAuth_SignInStoresToken(t *testing.T) {
	srv, _ := authServer(t)
	defer srv.Close()
	client := newClientFor(t, srv.URL)

	env, err := client.Auth().SignIn(context.Background(), SignInParams{
		Email:    "user@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if !env.Success {
		t.Fatal("Success = false")
	}
	if client.AccessToken() != "access-1" {
		t.Errorf("AccessToken() = %q, want access-1 stored from session", client.AccessToken())
	}
}

func TestAuth_SignInDeclinedDoesNotStoreToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"wrong password"},"meta":{"requestId":"r","timestamp":"2024-01-01T00:00:00Z"}}`))
	}))
	defer srv.Close()
	client := newClientFor(t, srv.URL)

	env, err := client.Auth().SignIn(context.Background(), SignInParams{Email: "x", Password: "bad"})
	if err != nil {
		t.Fatalf("SignIn() error = %v, want pass-through", err)
	}
	if env.Success {
		t.Error("Success = true")
	}
	if env.Error.Code != "INVALID_CREDENTIALS" {
		t.Errorf("Error.Code = %q", env.Error.Code)
	}
	if client.AccessToken() != "" {
		t.Errorf("AccessToken() = %q, want empty after declined sign-in", client.AccessToken())
	}
}

func TestAuth_RefreshTokenUpdatesCell(t *testing.T) {
	srv, seen := authServer(t)
	defer srv.Close()
	client := newClientFor(t, srv.URL)
	client.SetAccessToken("stale")

	env, err := client.Auth().RefreshToken(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if !env.Success {
		t.Fatal("Success = false")
	}
	if client.AccessToken() != "access-1" {
		t.Errorf("AccessToken() = %q, want refreshed token", client.AccessToken())
	}
	if (*seen)[0] != "POST /v1/auth/refresh" {
		t.Errorf("request = %s", (*seen)[0])
	}
}

func TestAuth_SignOutClearsToken(t *testing.T) {
	srv, _ := authServer(t)
	defer srv.Close()
	client := newClientFor(t, srv.URL)
	client.SetAccessToken("live")

	env, err := client.Auth().SignOut(context.Background())
	if err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if !env.Success {
		t.Fatal("Success = false")
	}
	if client.AccessToken() != "" {
		t.Errorf("AccessToken() = %q, want cleared", client.AccessToken())
	}
}

func TestAuth_PasswordFlows(t *testing.T) {
	srv, seen := authServer(t)
	defer srv.Close()
	client := newClientFor(t, srv.URL)
	ctx := context.Background()

	calls := []struct {
		run  func() error
		want string
	}{
		{func() error {
			_, err := client.Auth().VerifyEmail(ctx, "tok")
			return err
		}, "POST /v1/auth/verify-email"},
		{func() error {
			_, err := client.Auth().RequestPasswordReset(ctx, "a@b.c")
			return err
		}, "POST /v1/auth/password-reset"},
		{func() error {
			_, err := client.Auth().ResetPassword(ctx, "tok", "newpw")
			return err
		}, "POST /v1/auth/password-reset/confirm"},
		{func() error {
			_, err := client.Auth().ChangePassword(ctx, "old", "new")
			return err
		}, "POST /v1/auth/password"},
	}

	for i, c := range calls {
		if err := c.run(); err != nil {
			t.Fatalf("call %d error = %v", i, err)
		}
		if (*seen)[i] != c.want {
			t.Errorf("request %d = %s, want %s", i, (*seen)[i], c.want)
		}
	}
}
