package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	renderAPIURL      = "https://api.render.com/v1"
	renderMaxAttempts = 3
)

// SecretStorage guarda arquivos secretos de um serviço do Render
type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
	AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error
}

type AddOrUpdateSecretRequest struct {
	Content string `json:"content"`
}

type secretFileEntry struct {
	SecretFile struct {
		Content string `json:"content"`
		Name    string `json:"name"`
	} `json:"secretFile"`
	Cursor string `json:"cursor"`
}

// RenderError é uma resposta de erro da API do Render
type RenderError struct {
	StatusCode int
	Body       string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: status %d: %s", e.StatusCode, e.Body)
}

type RenderClient struct {
	APIKey      string
	BaseURL     string
	HTTPClient  *http.Client
	RetryPolicy func() backoff.BackOff
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		RetryPolicy: func() backoff.BackOff {
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = 500 * time.Millisecond
			return policy
		},
	}
}

func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	path := fmt.Sprintf("/services/%s/secret-files?limit=100", url.PathEscape(serviceID))

	var entries []secretFileEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("config: erro ao listar secrets: %w", err)
	}

	secrets := make(map[string]string, len(entries))
	for _, entry := range entries {
		secrets[entry.SecretFile.Name] = entry.SecretFile.Content
	}

	return secrets, nil
}

func (c *RenderClient) AddOrUpdateSecret(ctx context.Context, serviceID, secretName, secretContent string) error {
	path := fmt.Sprintf("/services/%s/secret-files/%s", url.PathEscape(serviceID), url.PathEscape(secretName))

	if err := c.do(ctx, http.MethodPut, path, AddOrUpdateSecretRequest{Content: secretContent}, nil); err != nil {
		return fmt.Errorf("config: erro ao salvar secret %s: %w", secretName, err)
	}
	return nil
}

// do executa a requisição repetindo falhas de rede e respostas 5xx
func (c *RenderClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusMultipleChoices {
			raw, _ := io.ReadAll(resp.Body)
			renderErr := &RenderError{StatusCode: resp.StatusCode, Body: string(raw)}
			if resp.StatusCode >= http.StatusInternalServerError {
				return renderErr
			}
			return backoff.Permanent(renderErr)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.retryPolicy(), renderMaxAttempts-1), ctx)
	return backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"wait":   wait.String(),
		}).WithError(err).Warn("render: falha temporária, tentando novamente")
	})
}

func (c *RenderClient) retryPolicy() backoff.BackOff {
	if c.RetryPolicy == nil {
		return &backoff.ZeroBackOff{}
	}
	return c.RetryPolicy()
}
