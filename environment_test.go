package polaris

import (
	"errors"
	"testing"
)

func TestResolveEndpoint_Table(t *testing.T) {
	tests := []struct {
		env      Environment
		audience Audience
		want     string
	}{
		{EnvDevelopment, AudienceExternal, "http://localhost:8080"},
		{EnvDevelopment, AudienceInternal, "http://localhost:8081"},
		{EnvStaging, AudienceExternal, "https://api.staging.polaris.dev"},
		{EnvStaging, AudienceInternal, "https://internal.staging.polaris.dev"},
		{EnvProduction, AudienceExternal, "https://api.polaris.dev"},
		{EnvProduction, AudienceInternal, "https://internal.polaris.dev"},
	}

	for _, tt := range tests {
		got, err := ResolveEndpoint(tt.env, tt.audience)
		if err != nil {
			t.Errorf("ResolveEndpoint(%s, %s) error = %v", tt.env, tt.audience, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveEndpoint(%s, %s) = %s, want %s", tt.env, tt.audience, got, tt.want)
		}
	}
}

func TestResolveEndpoint_Deterministic(t *testing.T) {
	first, err := ResolveEndpoint(EnvStaging, AudienceExternal)
	if err != nil {
		t.Fatalf("ResolveEndpoint() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := ResolveEndpoint(EnvStaging, AudienceExternal)
		if err != nil || got != first {
			t.Fatalf("ResolveEndpoint() = %s, %v; want %s each call", got, err, first)
		}
	}
}

func TestResolveEndpoint_UnknownCombination(t *testing.T) {
	if _, err := ResolveEndpoint(Environment("qa"), AudienceExternal); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown environment error = %v, want ErrInvalidConfig", err)
	}
	if _, err := ResolveEndpoint(EnvProduction, Audience("partner")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown audience error = %v, want ErrInvalidConfig", err)
	}
}

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		env   string
		want  Environment
	}{
		{"stage prod", "prod", "", EnvProduction},
		{"stage production", "production", "", EnvProduction},
		{"stage staging", "staging", "", EnvStaging},
		{"stage dev", "dev", "", EnvDevelopment},
		{"stage development", "development", "", EnvDevelopment},
		{"stage case-insensitive", "PRODUCTION", "", EnvProduction},
		{"fallback production", "", "production", EnvProduction},
		{"fallback staging", "", "staging", EnvStaging},
		{"fallback unrecognized", "", "test", EnvDevelopment},
		{"stage wins over fallback", "staging", "production", EnvStaging},
		{"nothing set", "", "", EnvDevelopment},
		{"unrecognized stage falls through", "qa", "staging", EnvStaging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvVarStage, tt.stage)
			t.Setenv(EnvVarEnv, tt.env)
			if got := DetectEnvironment(); got != tt.want {
				t.Errorf("DetectEnvironment() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEnvironmentValid(t *testing.T) {
	for _, env := range []Environment{EnvDevelopment, EnvStaging, EnvProduction} {
		if !env.Valid() {
			t.Errorf("%s should be valid", env)
		}
	}
	if Environment("qa").Valid() {
		t.Error("qa should be invalid")
	}
	if Environment("").Valid() {
		t.Error("empty environment should be invalid")
	}
}

func TestAudienceValid(t *testing.T) {
	for _, a := range []Audience{AudienceExternal, AudienceInternal} {
		if !a.Valid() {
			t.Errorf("%s should be valid", a)
		}
	}
	if Audience("partner").Valid() {
		t.Error("partner should be invalid")
	}
}
