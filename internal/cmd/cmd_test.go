package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-esignbase/esignbase/fakeserver"
	"github.com/jrsteele09/go-esignbase/internal/cmd"
	"github.com/jrsteele09/go-esignbase/internal/config"
	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	baseURL   string
	grantType string
	scopes    string
	secret    string
}

var _ config.Config = testConfig{}

func (c testConfig) GetAppName() string { return "eSignBase" }
func (c testConfig) GetLogLevel() string { return "debug" }
func (c testConfig) GetEnv() string { return "TEST" }
func (c testConfig) GetClientID() string { return fakeserver.DefaultClientID }
func (c testConfig) GetUserName() string { return fakeserver.DefaultUserName }
func (c testConfig) GetPassword() string { return fakeserver.DefaultPassword }
func (c testConfig) GetBaseURL() string { return c.baseURL }
func (c testConfig) GetGrantType() string { return c.grantType }
func (c testConfig) GetScopes() string { return c.scopes }
func (c testConfig) GetClientSecret() string {
	if c.secret != "" {
		return c.secret
	}
	return fakeserver.DefaultClientSecret
}
func (c testConfig) GetTimeout() (time.Duration, error) { return 5 * time.Second, nil }

func newConfig(srv *fakeserver.Server) testConfig {
	return testConfig{baseURL: srv.URL, grantType: "client_credentials", scopes: "all"}
}

func run(t *testing.T, cfg config.Config, args ...string) (int, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	code := cmd.Run(append([]string{"esignbase"}, args...), zerolog.Nop(), ui, cfg)
	return code, ui
}

func decode(t *testing.T, ui *cli.MockUi) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &out), ui.OutputWriter.String())
	return out
}

func TestTemplates(t *testing.T) {
	srv := fakeserver.New(t, fakeserver.WithTemplates(map[string]any{"id": "t1", "name": "NDA"}))

	code, ui := run(t, newConfig(srv), "templates")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Equal(t, map[string]any{
		"templates": []any{map[string]any{"id": "t1", "name": "NDA"}},
	}, decode(t, ui))

	code, ui = run(t, newConfig(srv), "template", "t1")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Equal(t, "NDA", decode(t, ui)["name"])

	code, ui = run(t, newConfig(srv), "template")
	require.Equal(t, 2, code)
	require.Contains(t, ui.ErrorWriter.String(), "expected exactly one template id")
}

func TestDocumentLifecycle(t *testing.T) {
	srv := fakeserver.New(t)
	cfg := newConfig(srv)

	code, ui := run(t, cfg, "create-document",
		"-template", "t1",
		"-name", "Contract",
		"-recipient", "jane@example.com,Jane,Doe,Signer,en",
		"-metadata", "order=A-17",
		"-metadata", "seats=3",
		"-expires", "2026-12-31T23:59:00+01:00",
	)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	id, _ := decode(t, ui)["id"].(string)
	require.NotEmpty(t, id)

	reqs := srv.RequestsTo("/api/document")
	require.Len(t, reqs, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	require.Equal(t, "2026-12-31T23:59:00+0100", body["expiration_date"])
	require.Equal(t, map[string]any{"order": "A-17", "seats": float64(3)}, body["user_defined_metadata"])

	code, ui = run(t, cfg, "documents", "-limit", "5")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Equal(t, float64(1), decode(t, ui)["total"])

	code, ui = run(t, cfg, "document", id)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Equal(t, "Contract", decode(t, ui)["name"])

	out := filepath.Join(t.TempDir(), "contract.pdf")
	code, ui = run(t, cfg, "download-document", "-out", out, id)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, fakeserver.PDFContent(id), string(content))

	code, ui = run(t, cfg, "delete-document", id)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Contains(t, ui.OutputWriter.String(), "Deleted document "+id)
	require.Empty(t, srv.DocumentIDs())

	code, ui = run(t, cfg, "document", id)
	require.Equal(t, 1, code)
	require.Contains(t, ui.ErrorWriter.String(), "status 404")
}

func TestCreateDocument_BadInput(t *testing.T) {
	srv := fakeserver.New(t)
	cfg := newConfig(srv)

	tests := map[string][]string{
		"short recipient": {"-template", "t1", "-name", "n", "-recipient", "jane@example.com,Jane"},
		"bad metadata":    {"-template", "t1", "-name", "n", "-recipient", "a@b.c,A,B,Signer,en", "-metadata", "novalue"},
		"bad expiry":      {"-template", "t1", "-name", "n", "-recipient", "a@b.c,A,B,Signer,en", "-expires", "tomorrow"},
		"no recipients":   {"-template", "t1", "-name", "n"},
		"unknown flag":    {"-colour", "blue"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			code, ui := run(t, cfg, append([]string{"create-document"}, args...)...)
			require.Equal(t, 2, code)
			require.NotEmpty(t, ui.ErrorWriter.String())
		})
	}
	require.Empty(t, srv.RequestsTo("/api/document"))
}

func TestCredits(t *testing.T) {
	srv := fakeserver.New(t, fakeserver.WithCredits(map[string]any{"credits": 7}))

	code, ui := run(t, newConfig(srv), "credits")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.Equal(t, map[string]any{"credits": float64(7)}, decode(t, ui))
}

func TestToken(t *testing.T) {
	srv := fakeserver.New(t)
	cfg := newConfig(srv)
	cfg.scopes = "read,create-document"

	code, ui := run(t, cfg, "token", "-claims")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	out := decode(t, ui)
	tok, ok := out["token"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, fakeserver.DefaultAccessToken, tok["access_token"])
	require.Equal(t, "read create_document", tok["scope"])
	require.NotContains(t, out, "claims")
	require.Contains(t, ui.ErrorWriter.String(), "cannot decode claims")
}

func TestConfigurationErrors(t *testing.T) {
	srv := fakeserver.New(t)

	t.Run("unknown grant type", func(t *testing.T) {
		cfg := newConfig(srv)
		cfg.grantType = "password"
		code, ui := run(t, cfg, "credits")
		require.Equal(t, 1, code)
		require.Contains(t, ui.ErrorWriter.String(), "ESIGNBASE_GRANT_TYPE")
	})

	t.Run("password grant without user", func(t *testing.T) {
		cfg := emptyUserConfig{newConfig(srv)}
		code, ui := run(t, cfg, "credits")
		require.Equal(t, 2, code)
		require.Contains(t, ui.ErrorWriter.String(), "configuration error")
	})

	t.Run("rejected secret", func(t *testing.T) {
		cfg := newConfig(srv)
		cfg.secret = "wrong"
		code, ui := run(t, cfg, "credits")
		require.Equal(t, 1, code)
		require.Contains(t, ui.ErrorWriter.String(), "authentication failed")
	})

	require.Empty(t, srv.RequestsTo("/api/credits"))
}

// emptyUserConfig selects the password grant but provides no user.
type emptyUserConfig struct {
	testConfig
}

func (emptyUserConfig) GetGrantType() string { return "authorization_code" }
func (emptyUserConfig) GetUserName() string { return "" }

func TestVersion(t *testing.T) {
	code, ui := run(t, testConfig{}, "-v")
	require.Equal(t, 0, code)
	require.Contains(t, ui.OutputWriter.String(), "eSignBase 0.1.0")
}
