// Package polaris provides typed Go clients for the Polaris platform APIs:
// authentication, user profiles, and file uploads.
//
// Every service method runs through a shared request engine with
// retry-with-backoff, a closed error taxonomy, and environment-aware
// endpoint resolution. Responses arrive as discriminated envelopes: branch
// on Success for business outcomes, and handle the returned error only for
// transport-level failures.
//
// Basic usage:
//
//	client, err := polaris.New(polaris.WithEnvironment(polaris.EnvStaging))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := client.Auth().SignIn(ctx, polaris.SignInParams{
//	    Email:    "user@example.com",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err) // service unreachable
//	}
//	if !env.Success {
//	    log.Fatalf("sign-in declined: %s", env.Error.Message)
//	}
//
//	profile, err := client.Users().GetProfile(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Hello,", profile.Data.DisplayName)
package polaris
