package esignbase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/go-esignbase/esignbase"
	"github.com/jrsteele09/go-esignbase/esignbase/fakeserver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConnect_ClientCredentials(t *testing.T) {
	srv := fakeserver.New(t)
	creds := validCredentials()
	creds.Scopes = []esignbase.Scope{esignbase.ScopeRead, esignbase.ScopeCreateDocument}
	client := newTestClient(t, srv, creds)

	require.NoError(t, client.Connect(testContext(t)))
	require.True(t, client.IsConnected())
	require.Equal(t, fakeserver.DefaultAccessToken, client.AccessToken())

	reqs := srv.RequestsTo("/oauth2/token")
	require.Len(t, reqs, 1)
	req := reqs[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "client_credentials", req.Form.Get("grant_type"))
	require.Equal(t, fakeserver.DefaultClientID, req.Form.Get("client_id"))
	require.Equal(t, fakeserver.DefaultClientSecret, req.Form.Get("client_secret"))
	require.Equal(t, "read create_document", req.Form.Get("scope"))
	require.False(t, req.Form.Has("username"))
	require.False(t, req.Form.Has("password"))
	require.Empty(t, req.Header.Get("Authorization"))
}

func TestConnect_PasswordGrant(t *testing.T) {
	srv := fakeserver.New(t)
	client := newTestClient(t, srv, passwordCredentials())

	require.NoError(t, client.Connect(testContext(t)))

	reqs := srv.RequestsTo("/oauth2/token")
	require.Len(t, reqs, 1)
	form := reqs[0].Form
	require.Equal(t, "authorization_code", form.Get("grant_type"))
	require.Equal(t, []string{"authorization_code"}, form["grant_type"])
	require.Equal(t, fakeserver.DefaultUserName, form.Get("username"))
	require.Equal(t, fakeserver.DefaultPassword, form.Get("password"))
	require.Equal(t, "all", form.Get("scope"))
}

func TestConnect_Rejected(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		srv := fakeserver.New(t, fakeserver.WithClient(fakeserver.DefaultClientID, "another-secret"))
		client := newTestClient(t, srv, validCredentials())

		err := client.Connect(testContext(t))
		require.Error(t, err)
		require.True(t, esignbase.IsKind(err, esignbase.KindAuthentication), "got %v", err)
		require.Equal(t, http.StatusUnauthorized, esignbase.StatusCode(err))
		require.Contains(t, err.Error(), "unknown client or wrong secret")
		require.False(t, client.IsConnected())
	})

	t.Run("wrong password", func(t *testing.T) {
		srv := fakeserver.New(t, fakeserver.WithUser(fakeserver.DefaultUserName, "nope"))
		client := newTestClient(t, srv, passwordCredentials())

		err := client.Connect(testContext(t))
		require.True(t, esignbase.IsKind(err, esignbase.KindAuthentication))
		require.Equal(t, http.StatusUnauthorized, esignbase.StatusCode(err))
	})

	t.Run("failure keeps previous token", func(t *testing.T) {
		srv := fakeserver.New(t)
		client := connectedClient(t, srv)

		srv.Handle("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		})

		err := client.Connect(testContext(t))
		require.True(t, esignbase.IsKind(err, esignbase.KindAuthentication))
		require.Equal(t, http.StatusServiceUnavailable, esignbase.StatusCode(err))
		require.True(t, client.IsConnected())
		require.Equal(t, fakeserver.DefaultAccessToken, client.AccessToken())
	})
}

func TestConnect_MalformedTokenResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing access token", body: `{"token_type":"bearer","expires_in":3600}`},
		{name: "empty access token", body: `{"access_token":"","token_type":"bearer"}`},
		{name: "not json", body: `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeserver.New(t)
			srv.Handle("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})
			client := newTestClient(t, srv, validCredentials())

			err := client.Connect(testContext(t))
			require.Error(t, err)
			require.True(t, esignbase.IsKind(err, esignbase.KindAuthentication), "got %v", err)
			require.False(t, client.IsConnected())
		})
	}
}

func TestConnect_TransportError(t *testing.T) {
	srv := fakeserver.New(t)
	client := newTestClient(t, srv, validCredentials())
	srv.Close()

	err := client.Connect(testContext(t))
	require.Error(t, err)
	require.True(t, esignbase.IsKind(err, esignbase.KindTransport), "got %v", err)
	require.Zero(t, esignbase.StatusCode(err))
	require.False(t, client.IsConnected())
}

func TestConnect_ContextCancelled(t *testing.T) {
	srv := fakeserver.New(t)
	client := newTestClient(t, srv, validCredentials())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Connect(ctx)
	require.True(t, esignbase.IsKind(err, esignbase.KindTransport), "got %v", err)
	require.Empty(t, srv.Requests())
}

func TestConnect_ReplacesToken(t *testing.T) {
	srv := fakeserver.New(t, fakeserver.WithTokens("token-a", "token-b"))
	client := newTestClient(t, srv, validCredentials())

	require.NoError(t, client.Connect(testContext(t)))
	require.Equal(t, "token-a", client.AccessToken())

	require.NoError(t, client.Connect(testContext(t)))
	require.Equal(t, "token-b", client.AccessToken())

	_, err := client.GetCredits(testContext(t))
	require.NoError(t, err)

	last, ok := srv.LastRequest()
	require.True(t, ok)
	require.Equal(t, "/api/credits", last.Path)
	require.Equal(t, "Bearer token-b", last.Header.Get("Authorization"))
}

func TestConnect_TokenResponse(t *testing.T) {
	srv := fakeserver.New(t, fakeserver.WithExpiresIn(600))
	client := newTestClient(t, srv, validCredentials())

	_, ok := client.TokenResponse()
	require.False(t, ok)

	require.NoError(t, client.Connect(testContext(t)))

	resp, ok := client.TokenResponse()
	require.True(t, ok)
	require.NotNil(t, resp.AccessToken)
	require.Equal(t, fakeserver.DefaultAccessToken, *resp.AccessToken)
	require.True(t, strings.EqualFold("bearer", resp.TokenType))
	require.Equal(t, "all", resp.Scope)
	require.Positive(t, resp.ExpiresIn)
	require.LessOrEqual(t, resp.ExpiresIn, 600)
	require.Equal(t, []string{"all"}, resp.Scopes())

	client.Disconnect()
	_, ok = client.TokenResponse()
	require.False(t, ok)
}

func TestConnect_LogsWithoutSecrets(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	srv := fakeserver.New(t)
	client := newTestClient(t, srv, passwordCredentials(), esignbase.WithLogger(logger))
	require.NoError(t, client.Connect(testContext(t)))
	_, err := client.GetTemplates(testContext(t))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "obtained access token")
	require.Contains(t, out, "request completed")
	require.NotContains(t, out, fakeserver.DefaultClientSecret)
	require.NotContains(t, out, fakeserver.DefaultPassword)
	require.NotContains(t, out, fakeserver.DefaultAccessToken)
}

func TestDisconnect(t *testing.T) {
	srv := fakeserver.New(t)
	client := connectedClient(t, srv)

	client.Disconnect()
	require.False(t, client.IsConnected())

	_, err := client.GetCredits(testContext(t))
	require.True(t, esignbase.IsKind(err, esignbase.KindNotAuthenticated))
	require.Empty(t, srv.RequestsTo("/api/credits"))
}
