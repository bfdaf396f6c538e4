package gateway

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"e-guarding-cctv/console/config"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	c := NewClient(config.GatewayConfig{URL: "http://gateway.test", AnonKey: "anon-key"})
	httpmock.ActivateNonDefault(c.httpClient)
	return c
}

func TestClient_SelectEncodesQueryAndHeaders(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, "http://gateway.test/rest/v1/cameras",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "anon-key", req.Header.Get("apikey"))
			assert.Equal(t, "Bearer anon-key", req.Header.Get("Authorization"))

			params := req.URL.Query()
			assert.Equal(t, "*", params.Get("select"))
			assert.Equal(t, "eq.online", params.Get("status"))
			assert.Equal(t, "created_at.desc", params.Get("order"))
			assert.Equal(t, "100", params.Get("limit"))

			return httpmock.NewStringResponse(http.StatusOK, `[{"id":"cam-1","name":"Lobby"}]`), nil
		})

	var rows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	q := NewQuery().Eq("status", "online").OrderBy("created_at", false).Limit(100)
	err := c.Select(context.Background(), "cameras", q, &rows)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lobby", rows[0].Name)
}

func TestClient_InsertRequestsRepresentationWhenDecoding(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://gateway.test/rest/v1/events",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "return=representation", req.Header.Get("Prefer"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(http.StatusCreated, `[{"id":"ev-1"}]`), nil
		})

	var created []struct {
		ID string `json:"id"`
	}
	err := c.Insert(context.Background(), "events", map[string]string{"event_type": "fire"}, &created)

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "ev-1", created[0].ID)
}

func TestClient_InsertWithoutDestSkipsRepresentation(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://gateway.test/rest/v1/events",
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("Prefer"))
			return httpmock.NewStringResponse(http.StatusCreated, ""), nil
		})

	err := c.Insert(context.Background(), "events", map[string]string{"event_type": "fire"}, nil)
	require.NoError(t, err)
}

func TestClient_ErrorCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, "http://gateway.test/rest/v1/cameras",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"message":"overloaded"}`))

	var rows []struct{}
	err := c.Select(context.Background(), "cameras", nil, &rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway returned 503")
	assert.Contains(t, err.Error(), "overloaded")
}

func TestClient_UpdateTargetsFilteredRows(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPatch, "http://gateway.test/rest/v1/events",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "eq.ev-1", req.URL.Query().Get("id"))
			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	err := c.Update(context.Background(), "events", map[string]bool{"acknowledged": true}, NewQuery().Eq("id", "ev-1"))
	require.NoError(t, err)
}

func TestClient_StorageUpload(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://gateway.test/storage/v1/object/ai-models/abc_weights.pt",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/octet-stream", req.Header.Get("Content-Type"))
			assert.Equal(t, "anon-key", req.Header.Get("apikey"))
			return httpmock.NewStringResponse(http.StatusOK, `{"Key":"ai-models/abc_weights.pt"}`), nil
		})

	err := c.Upload(context.Background(), BucketAIModels, "abc_weights.pt", strings.NewReader("weights"), "")
	require.NoError(t, err)
}

func TestObjectKeyStripsPathSeparators(t *testing.T) {
	key := ObjectKey("nested/dir/weights.pt")
	assert.True(t, strings.HasSuffix(key, "_nested_dir_weights.pt"))
	assert.NotContains(t, key, "/")

	// Keys are unique per call.
	assert.NotEqual(t, ObjectKey("a.pt"), ObjectKey("a.pt"))
}

func TestClient_PublicURL(t *testing.T) {
	c := NewClient(config.GatewayConfig{URL: "http://gateway.test", AnonKey: "anon-key"})
	assert.Equal(t,
		"http://gateway.test/storage/v1/object/public/datasets/123_plates.zip",
		c.PublicURL(BucketDatasets, "123_plates.zip"))
}

func TestClient_SignInPostsPasswordGrant(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://gateway.test/auth/v1/token",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "password", req.URL.Query().Get("grant_type"))
			return httpmock.NewStringResponse(http.StatusOK, `{
				"access_token": "jwt-token",
				"token_type": "bearer",
				"expires_in": 3600,
				"user": {"id": "user-1", "email": "admin@example.com", "role": "authenticated"}
			}`), nil
		})

	session, err := c.SignIn(context.Background(), "admin@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.AccessToken)
	assert.Equal(t, "admin@example.com", session.User.Email)
}

func TestClient_SignInRejectsBadCredentials(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://gateway.test/auth/v1/token",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"invalid_grant"}`))

	_, err := c.SignIn(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
}

func TestClient_UpdatePasswordUsesCallerToken(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPut, "http://gateway.test/auth/v1/user",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	err := c.UpdatePassword(context.Background(), "user-token", "newsecret")
	require.NoError(t, err)
}
