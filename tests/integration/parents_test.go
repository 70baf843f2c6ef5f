//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/opshive/orgtree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParents_ForSubAdmin(t *testing.T) {
	client := newTestClient(t)
	adminID, _, _ := signupAdmin(t, client, "Candidate Admin")

	resp, err := client.GET("/api/v1/auth/parents?role=sub-admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)

	found := false
	for _, c := range result.Data {
		assert.Equal(t, "admin", c.Role)
		if c.ID == adminID {
			found = true
			assert.Equal(t, "Candidate Admin", c.Name)
		}
	}
	assert.True(t, found, "admin should be offered as a sub-admin parent")
}

func TestParents_ForUser(t *testing.T) {
	client := newTestClient(t)
	adminID, _, _ := signupAdmin(t, client, "Parent Pool Admin")
	subID, _, _ := signupAccount(t, client, "Parent Pool Sub", "sub-admin", adminID)

	resp, err := client.GET("/api/v1/auth/parents?role=user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)

	found := false
	for _, c := range result.Data {
		assert.Equal(t, "sub-admin", c.Role)
		if c.ID == subID {
			found = true
		}
		assert.NotEqual(t, adminID, c.ID)
	}
	assert.True(t, found, "sub-admin should be offered as a user parent")
}

func TestParents_InvalidRole(t *testing.T) {
	client := newTestClientWithoutValidation()

	for _, role := range []string{"admin", "superuser", ""} {
		resp, err := client.GET("/api/v1/auth/parents?role=" + role)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "role=%q", role)
		resp.Body.Close()
	}
}
