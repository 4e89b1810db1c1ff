package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const promptTemplate = `You are an intelligent data labeling system.

Your task is to analyze the given text and generate the most appropriate high-level category label that best describes its main topic.

Guidelines:
- The label must be short (1-3 words maximum).
- Use clear, commonly understood category names (e.g., Sports, Finance, Healthcare, Education, Technology, Travel, Politics, Entertainment, Weather, Food, Business, Science, etc.).
- Choose the dominant topic if multiple topics appear.
- Do NOT return sentences or explanations.
- Do NOT include punctuation, emojis, or quotes.
- Return only the category label.

Text:
"%s"`

type RemoteConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// RemoteClassifier calls an OpenAI-compatible chat completions endpoint.
type RemoteClassifier struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewRemoteClassifier(cfg RemoteConfig) *RemoteClassifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &RemoteClassifier{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RemoteClassifier) Classify(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("llm api key not configured")
	}

	payload := map[string]interface{}{
		"model":       c.model,
		"temperature": 0.2,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(promptTemplate, text)},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api returned status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing completion response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("no completion returned")
	}

	return result.Choices[0].Message.Content, nil
}
