package polaris

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment is a logical deployment environment.
type Environment string

// Supported environments.
const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Audience selects between the externally-exposed gateway and the
// internal-network-only gateway for the same logical services.
type Audience string

// Supported audiences.
const (
	AudienceExternal Audience = "external"
	AudienceInternal Audience = "internal"
)

// Environment variables consulted by DetectEnvironment. The stage variable
// wins; the generic environment name is the fallback.
const (
	EnvVarStage = "POLARIS_STAGE"
	EnvVarEnv   = "APP_ENV"
)

// endpoints is the static environment × audience endpoint table.
var endpoints = map[Environment]map[Audience]string{
	EnvDevelopment: {
		AudienceExternal: "http://localhost:8080",
		AudienceInternal: "http://localhost:8081",
	},
	EnvStaging: {
		AudienceExternal: "https://api.staging.polaris.dev",
		AudienceInternal: "https://internal.staging.polaris.dev",
	},
	EnvProduction: {
		AudienceExternal: "https://api.polaris.dev",
		AudienceInternal: "https://internal.polaris.dev",
	},
}

// Valid reports whether e is a member of the environment enum.
func (e Environment) Valid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	}
	return false
}

// Valid reports whether a is a member of the audience enum.
func (a Audience) Valid() bool {
	switch a {
	case AudienceExternal, AudienceInternal:
		return true
	}
	return false
}

// ResolveEndpoint maps an environment and audience to the concrete base URL.
// The table is exhaustive by construction; an unknown combination is a
// configuration error.
func ResolveEndpoint(env Environment, audience Audience) (string, error) {
	byAudience, ok := endpoints[env]
	if !ok {
		return "", fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, env)
	}
	url, ok := byAudience[audience]
	if !ok {
		return "", fmt.Errorf("%w: unknown audience %q", ErrInvalidConfig, audience)
	}
	return url, nil
}

// DetectEnvironment reads the ambient deployment stage once and maps it to
// an environment. POLARIS_STAGE is consulted first (prod/production,
// staging, dev/development), then APP_ENV (production, staging). Anything
// else defaults to development.
func DetectEnvironment() Environment {
	switch strings.ToLower(os.Getenv(EnvVarStage)) {
	case "prod", "production":
		return EnvProduction
	case "staging":
		return EnvStaging
	case "dev", "development":
		return EnvDevelopment
	}

	switch strings.ToLower(os.Getenv(EnvVarEnv)) {
	case "production":
		return EnvProduction
	case "staging":
		return EnvStaging
	}

	return EnvDevelopment
}

// LoadDotenv loads .env files into the process environment before detection.
// Missing files are not an error when no explicit paths are given.
func LoadDotenv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && len(files) == 0 && os.IsNotExist(err) {
		return nil
	}
	return err
}
