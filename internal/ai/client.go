package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTokenURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	defaultChatURL  = "https://gigachat.devices.sberbank.ru/api/v1/chat/completions"
	defaultModel    = "GigaChat-Pro"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GigaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type GigaChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type GigaChatClient struct {
	authKey  string
	http     *http.Client
	tokenURL string
	chatURL  string
	model    string
}

type Option func(*GigaChatClient)

func WithHTTPClient(c *http.Client) Option {
	return func(gg_cl *GigaChatClient) { gg_cl.http = c }
}

// WithEndpoints points the client at alternative OAuth and chat URLs.
func WithEndpoints(tokenURL, chatURL string) Option {
	return func(gg_cl *GigaChatClient) {
		gg_cl.tokenURL = tokenURL
		gg_cl.chatURL = chatURL
	}
}

func NewGigaChatClient(authKey string, opts ...Option) *GigaChatClient {
	gg_cl := &GigaChatClient{
		authKey:  authKey,
		http:     &http.Client{Timeout: 60 * time.Second},
		tokenURL: defaultTokenURL,
		chatURL:  defaultChatURL,
		model:    defaultModel,
	}
	for _, opt := range opts {
		opt(gg_cl)
	}
	return gg_cl
}

// Generate sends prompt as a single user message and returns the first choice.
func (gg_cl *GigaChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	token, err := gg_cl.accessToken(ctx)
	if err != nil {
		return "", err
	}

	reqBody := GigaChatRequest{
		Model:    gg_cl.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("chat marshal failed: %w", err)
	}

	chatHttpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, gg_cl.chatURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("chat request create failed: %w", err)
	}
	chatHttpReq.Header.Set("Authorization", "Bearer "+token)
	chatHttpReq.Header.Set("Content-Type", "application/json")
	chatHttpReq.Header.Set("RqUID", uuid.NewString())

	resp, err := gg_cl.http.Do(chatHttpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chat http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp GigaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("chat decode failed: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (gg_cl *GigaChatClient) accessToken(ctx context.Context) (string, error) {
	tokenForm := url.Values{}
	tokenForm.Set("scope", "GIGACHAT_API_PERS")

	tokenHttpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, gg_cl.tokenURL,
		strings.NewReader(tokenForm.Encode()))
	if err != nil {
		return "", fmt.Errorf("token request create failed: %w", err)
	}

	tokenHttpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokenHttpReq.Header.Set("RqUID", uuid.NewString())
	tokenHttpReq.Header.Set("Authorization", "Basic "+gg_cl.authKey)

	tokenResp, err := gg_cl.http.Do(tokenHttpReq)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer tokenResp.Body.Close()

	if tokenResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(tokenResp.Body, 1024))
		return "", fmt.Errorf("token http %d: %s", tokenResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
	}

	if err := json.NewDecoder(tokenResp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("token decode failed: %w", err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	return tokenData.AccessToken, nil
}
