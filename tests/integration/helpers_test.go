//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/opshive/orgtree/internal/testutil"
	"github.com/stretchr/testify/require"
)

// signupAccount registers an account and returns its id, email and token.
func signupAccount(t *testing.T, client *testutil.Client, name, role string, parentID string) (id, email, token string) {
	t.Helper()

	email = testutil.RandomEmail(role)
	payload := map[string]any{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	}
	if parentID != "" {
		payload["parent_id"] = parentID
	}

	resp, err := client.POST("/api/v1/auth/signup", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID    string `json:"id"`
			Token string `json:"token"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	require.NotEmpty(t, result.Data.Token)
	return result.Data.ID, email, result.Data.Token
}

// signupAdmin registers an admin account.
func signupAdmin(t *testing.T, client *testutil.Client, name string) (id, email, token string) {
	t.Helper()
	return signupAccount(t, client, name, "admin", "")
}

// errorMessage decodes the error envelope and returns its message.
func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var result struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Error.Message
}
