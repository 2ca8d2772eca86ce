package copilot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Completer sends one prompt to a text-completion service and returns the
// raw reply text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserQuery    string
	Temperature  float64
	MaxTokens    int
}

const (
	ReasonTransport = "transport"
	ReasonStatus    = "status"
	ReasonDecode    = "decode"
	ReasonEmpty     = "empty"
)

// RemoteError carries a failure reason suitable for a metric label.
type RemoteError struct {
	Reason string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (http %d): %v", e.Reason, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func failureReason(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ReasonTransport
}

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	URL        string
	APIKey     string
	HTTP       *http.Client
	MaxRetries uint64
	log        *logrus.Entry
}

func NewOpenAIClient(url, apiKey string, timeout time.Duration, maxRetries uint64, log *logrus.Entry) *OpenAIClient {
	return &OpenAIClient{
		URL:        url,
		APIKey:     apiKey,
		HTTP:       &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		log:        log.WithField("component", "copilot-openai"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Complete posts the request, retrying network errors and 5xx responses with
// exponential backoff. 4xx responses and unreadable bodies are not retried.
func (c *OpenAIClient) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	data, err := json.Marshal(chatRequest{
		Model: in.Model,
		Messages: []chatMessage{
			{Role: "system", Content: in.SystemPrompt},
			{Role: "user", Content: in.UserQuery},
		},
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	var content string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(&RemoteError{Reason: ReasonTransport, Err: err})
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			c.log.WithError(err).Debug("chat request failed")
			return &RemoteError{Reason: ReasonTransport, Err: err}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &RemoteError{Reason: ReasonTransport, Err: err}
		}
		if resp.StatusCode >= 500 {
			return &RemoteError{Reason: ReasonStatus, Status: resp.StatusCode, Err: errors.New(snippet(body))}
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(&RemoteError{Reason: ReasonStatus, Status: resp.StatusCode, Err: errors.New(snippet(body))})
		}

		text, err := extractContentFromChoices(body)
		if err != nil {
			return backoff.Permanent(err)
		}
		content = text
		return nil
	}

	var b backoff.BackOff = backoff.NewExponentialBackOff()
	b = backoff.WithContext(backoff.WithMaxRetries(b, c.MaxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return content, nil
}

// extractContentFromChoices reads choices[0].message.content from an
// OpenAI-style reply.
func extractContentFromChoices(body []byte) (string, error) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &RemoteError{Reason: ReasonDecode, Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &RemoteError{Reason: ReasonEmpty, Err: errors.New("no choices in reply")}
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", &RemoteError{Reason: ReasonEmpty, Err: errors.New("empty message content")}
	}
	return content, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
