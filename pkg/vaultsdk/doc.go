/*
Package vaultsdk is a Go client for the vault HTTP API.

# Overview

The API is cookie based: a signed consent marker gates authentication and
an HttpOnly session cookie carries the login. Client keeps both in a cookie
jar, so a single Client behaves like one browser.

	client, err := vaultsdk.NewClient("https://vault.example.com")

	// The consent prompt must be answered before signing up or logging in.
	view, err := client.AcceptConsent(ctx, vaultsdk.Permissions{Camera: true, Location: true, Storage: true}, 1500)

	// Every login needs a fresh challenge.
	ch, err := client.GetChallenge(ctx)
	auth, err := client.Login(ctx, vaultsdk.LoginRequest{
		Email:           "alice@example.com",
		Password:        password,
		ChallengeID:     ch.ID,
		ChallengeAnswer: answer,
	})

# Errors

Failed requests return *APIError. A failed login carries the next challenge:

	var apiErr *vaultsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Challenge != nil {
		// show apiErr.Challenge.Prompt
	}
*/
package vaultsdk
