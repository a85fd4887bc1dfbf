package testutil

import (
	"testing"

	"github.com/soleworks/soleworks-api/services"
)

// IssueAdminToken signs a valid admin token with the given secret
func IssueAdminToken(t *testing.T, secret string) string {
	t.Helper()

	token, err := services.NewTokenService(secret).Issue(1, "admin")
	if err != nil {
		t.Fatalf("Failed to issue admin token: %v", err)
	}
	return token
}

// IssueUserToken signs a valid non-admin token with the given secret
func IssueUserToken(t *testing.T, secret string) string {
	t.Helper()

	token, err := services.NewTokenService(secret).Issue(2, "user")
	if err != nil {
		t.Fatalf("Failed to issue user token: %v", err)
	}
	return token
}
