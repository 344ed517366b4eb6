package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config for the transactional-email API. Delivery itself is handled
// by the provider behind APIURL.
type Config struct {
	APIURL      string `validate:"required,url"`
	APIKey      string `validate:"required"`
	FromAddress string `validate:"required,email"`
}

type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
}

type sendRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
}

type Client struct {
	config      Config
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(config Config) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid mailer config: %w", err)
	}
	return &Client{config: config, httpClient: &http.Client{}}, nil
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) Send(ctx context.Context, message Message) error {

	payload, err := json.Marshal(sendRequest{
		From:     c.config.FromAddress,
		To:       message.To,
		Subject:  message.Subject,
		TextBody: message.TextBody,
	})
	if err != nil {
		return fmt.Errorf("error encoding message: %v", err)
	}

	_, err = c.sendRequest(ctx, "POST", c.config.APIURL, bytes.NewReader(payload))
	return err
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
