package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const renderAPIURL = "https://api.render.com/v1"

type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
}

type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	url := fmt.Sprintf("%s/services/%s/secret-files?limit=100", c.BaseURL, serviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("config: erro ao listar secrets: %s", body)
	}

	var response []struct {
		SecretFile struct {
			Content string `json:"content"`
			Name    string `json:"name"`
		} `json:"secretFile"`
		Cursor string `json:"cursor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	secretsMap := make(map[string]string)
	for _, sf := range response {
		secretsMap[sf.SecretFile.Name] = sf.SecretFile.Content
	}

	return secretsMap, nil
}

// SecretCredentials lê as credenciais gravadas em um secret file, uma por linha (usuario:senha)
func SecretCredentials(ctx context.Context, storage SecretStorage, serviceID, secretName string) ([]domain.Credential, error) {
	secrets, err := storage.ListSecrets(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	content, ok := secrets[secretName]
	if !ok {
		return nil, fmt.Errorf("config: secret %q não encontrado", secretName)
	}

	return ParseCredentials(content), nil
}

// ParseCredentials aceita linhas usuario:senha, ignorando linhas vazias e comentários
func ParseCredentials(content string) []domain.Credential {
	var credentials []domain.Credential
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		username, password, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(username) == "" {
			continue
		}

		credentials = append(credentials, domain.Credential{
			Username: strings.TrimSpace(username),
			Password: strings.TrimSpace(password),
		})
	}
	return credentials
}
