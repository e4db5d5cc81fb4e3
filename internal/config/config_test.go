package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

func validConfig() *Config {
	return &Config{
		Storage:   Storage{Backend: BackendFile, DataFile: "data.json"},
		SecretKey: "segredo",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{name: "Configuração válida", mutate: func(c *Config) {}},
		{
			name:    "Backend desconhecido",
			mutate:  func(c *Config) { c.Storage.Backend = "mongo" },
			wantErr: []string{"DATA_BACKEND inválido"},
		},
		{
			name: "Vários problemas são reportados juntos",
			mutate: func(c *Config) {
				c.Storage.DataFile = ""
				c.SecretKey = ""
				c.Business.DueDays = -1
			},
			wantErr: []string{"DATA_FILE", "SECRET_KEY", "INVOICE_DUE_DAYS"},
		},
		{
			name: "Exportação habilitada exige concorrência",
			mutate: func(c *Config) {
				c.InvoiceExport.Enabled = true
				c.InvoiceExport.OutputDir = "out"
			},
			wantErr: []string{"INVOICE_EXPORT_MAX_CONCURRENT_JOBS"},
		},
		{
			name: "SQLite exige caminho",
			mutate: func(c *Config) {
				c.Storage.Backend = BackendSQLite
			},
			wantErr: []string{"SQLITE_PATH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_Credentials(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Users = []string{"admin:123", " ravi : chai ", "invalido", ":semnome"}

	assert.Equal(t, []domain.Credential{
		{Username: "admin", Password: "123"},
		{Username: "ravi", Password: " chai"},
	}, cfg.Credentials())
}

func TestConfig_BusinessProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Business = Business{Name: "7 Star Chai", Currency: "Rs.", DueDays: 7}

	profile := cfg.BusinessProfile()
	assert.Equal(t, "7 Star Chai", profile.Name)
	assert.Equal(t, "Rs.", profile.Currency)
	assert.Equal(t, 7, profile.DueDays)
}

func TestParseCredentials(t *testing.T) {
	content := "# usuários\nadmin:$2a$10$hash\n\nravi:chai\nlinha-invalida\n"

	assert.Equal(t, []domain.Credential{
		{Username: "admin", Password: "$2a$10$hash"},
		{Username: "ravi", Password: "chai"},
	}, ParseCredentials(content))
}

func TestSecretCredentials_RenderClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-1/secret-files", r.URL.Path)
		assert.Equal(t, "Bearer chave", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"secretFile":{"name":"users","content":"admin:123"}}]`))
	}))
	defer srv.Close()

	client := &RenderClient{APIKey: "chave", BaseURL: srv.URL, HTTPClient: srv.Client()}

	credentials, err := SecretCredentials(context.Background(), client, "srv-1", "users")
	require.NoError(t, err)
	assert.Equal(t, []domain.Credential{{Username: "admin", Password: "123"}}, credentials)

	_, err = SecretCredentials(context.Background(), client, "srv-1", "outro")
	assert.Error(t, err)
}
