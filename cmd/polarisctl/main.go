// polarisctl is a small operational helper around the client: check gateway
// health, inspect the signed-in profile, obtain a session, or push a file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	polaris "github.com/polarisapp/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: polarisctl <health|whoami|signin|upload> [args]")
	}

	if err := polaris.LoadDotenv(); err != nil {
		fatal("load .env: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	opts := []polaris.Option{}
	if url := os.Getenv("POLARIS_URL"); url != "" {
		opts = append(opts, polaris.WithBaseURL(url))
	}
	if token := os.Getenv("POLARIS_TOKEN"); token != "" {
		opts = append(opts, polaris.WithAccessToken(token))
	}
	if os.Getenv("POLARIS_DEBUG") != "" {
		opts = append(opts, polaris.WithDebug())
	}

	client, err := polaris.New(opts...)
	if err != nil {
		fatal("create client: %v", err)
	}

	switch os.Args[1] {
	case "health":
		health(ctx, client)
	case "whoami":
		whoami(ctx, client)
	case "signin":
		if len(os.Args) < 4 {
			fatal("usage: polarisctl signin <email> <password>")
		}
		signin(ctx, client, os.Args[2], os.Args[3])
	case "upload":
		if len(os.Args) < 3 {
			fatal("usage: polarisctl upload <file>")
		}
		upload(ctx, client, os.Args[2])
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func health(ctx context.Context, client *polaris.Client) {
	ok := client.Health(ctx)
	json.NewEncoder(os.Stdout).Encode(map[string]any{
		"endpoint":    client.Endpoint(),
		"environment": client.Environment(),
		"healthy":     ok,
	})
	if !ok {
		os.Exit(1)
	}
}

func whoami(ctx context.Context, client *polaris.Client) {
	env, err := client.Users().GetProfile(ctx)
	if err != nil {
		fatal("get profile: %v", err)
	}
	if !env.Success {
		fatal("get profile: %s (%s)", env.Error.Message, env.Error.Code)
	}
	json.NewEncoder(os.Stdout).Encode(env.Data)
}

func signin(ctx context.Context, client *polaris.Client, email, password string) {
	env, err := client.Auth().SignIn(ctx, polaris.SignInParams{
		Email:    email,
		Password: password,
	})
	if err != nil {
		fatal("sign in: %v", err)
	}
	if !env.Success {
		fatal("sign in: %s (%s)", env.Error.Message, env.Error.Code)
	}
	json.NewEncoder(os.Stdout).Encode(map[string]any{
		"userId":    env.Data.UserID,
		"expiresIn": env.Data.ExpiresIn,
		"token":     env.Data.AccessToken,
	})
}

func upload(ctx context.Context, client *polaris.Client, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read file: %v", err)
	}

	env, err := client.Uploads().UploadAndComplete(ctx, polaris.PresignParams{
		FileName:    filepath.Base(path),
		ContentType: contentTypeFor(path),
		SizeBytes:   int64(len(data)),
	}, data)
	if err != nil {
		fatal("upload: %v", err)
	}
	if !env.Success {
		fatal("upload: %s (%s)", env.Error.Message, env.Error.Code)
	}
	json.NewEncoder(os.Stdout).Encode(env.Data)
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
