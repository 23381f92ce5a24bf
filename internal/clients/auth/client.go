package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/easymed/billing/internal/entity"
	"github.com/easymed/billing/pkg/transport"
)

// Client talks to the hospital auth service to resolve bearer tokens into
// staff users.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   time.Second,
			Transport: transport.NewLoggingRoundTripper(http.DefaultTransport),
		},
	}
}

type validateTokenRequest struct {
	Token string `json:"accessToken"`
}

type validateTokenResponse struct {
	ID        uuid.UUID       `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
}

func (c *Client) User(ctx context.Context, token string) (entity.User, error) {
	j, err := json.Marshal(validateTokenRequest{Token: token})
	if err != nil {
		return entity.User{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/validate", bytes.NewReader(j))
	if err != nil {
		return entity.User{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if jwt := entity.JWTFromCtx(ctx); jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.User{}, fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return entity.User{}, entity.ErrForbidden
	default:
		body, _ := io.ReadAll(resp.Body)
		return entity.User{}, fmt.Errorf("unexpected status code: %d\nbody: %s", resp.StatusCode, body)
	}

	var data validateTokenResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return entity.User{}, fmt.Errorf("decode response: %w", err)
	}

	return entity.User{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Role:      data.Role,
	}, nil
}
