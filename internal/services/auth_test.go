package services

import (
	"context"
	"testing"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, pair, err := env.auth.Register(ctx, RegisterInput{
		Email:     "Cook@Example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "cook@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("register returned empty tokens")
	}

	subject, err := env.auth.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject mismatch: %s != %s", subject, user.ID)
	}

	_, loginPair, err := env.auth.Login(ctx, Credentials{Email: "cook@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginPair.AccessToken == "" {
		t.Fatal("login returned empty access token")
	}

	_, _, err = env.auth.Login(ctx, Credentials{Email: "cook@example.com", Password: "wrong"})
	wantStatus(t, err, 401)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := RegisterInput{Email: "cook@example.com", Username: "cook", Password: "supersecret"}
	if _, _, err := env.auth.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := env.auth.Register(ctx, in)
	wantStatus(t, err, 409)

	other := in
	other.Email = "other@example.com"
	_, _, err = env.auth.Register(ctx, other)
	wantStatus(t, err, 409)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.auth.Register(ctx, RegisterInput{Email: "not-an-email", Username: "x", Password: "supersecret"})
	wantStatus(t, err, 400)

	_, _, err = env.auth.Register(ctx, RegisterInput{Email: "ok@example.com", Username: "x", Password: "short"})
	wantStatus(t, err, 400)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, pair, err := env.auth.Register(ctx, RegisterInput{Email: "cook@example.com", Username: "cook", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	next, err := env.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token not rotated")
	}

	// The consumed token must not work twice.
	_, err = env.auth.Refresh(ctx, pair.RefreshToken)
	wantStatus(t, err, 401)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, pair, err := env.auth.Register(ctx, RegisterInput{Email: "cook@example.com", Username: "cook", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := env.auth.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = env.auth.Refresh(ctx, pair.RefreshToken)
	wantStatus(t, err, 401)
}
