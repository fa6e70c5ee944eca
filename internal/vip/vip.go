package vip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	"go.uber.org/zap"
)

// APIClassifier resolves VIP status against the loyalty programme API and
// degrades to a local heuristic when the API is unreachable. Classification
// never fails; a booking flow must not depend on a third-party being up.
type APIClassifier struct {
	apiURL     string
	apiToken   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAPIClassifier creates a classifier backed by the loyalty API. When
// apiURL is empty the classifier runs heuristic-only.
func NewAPIClassifier(apiURL, apiToken string, timeout time.Duration, logger *zap.Logger) *APIClassifier {
	return &APIClassifier{
		apiURL:     apiURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type classifyRequest struct {
	Email string `json:"email"`
}

type classifyResponse struct {
	IsVIP bool   `json:"is_vip"`
	Tier  string `json:"tier"`
}

// Classify returns the VIP status for an email address.
func (c *APIClassifier) Classify(ctx context.Context, email string) clientDomain.VIPStatus {
	if c.apiURL == "" {
		return heuristic(email)
	}

	status, err := c.classifyRemote(ctx, email)
	if err != nil {
		c.logger.Warn("vip api unavailable, falling back to heuristic",
			zap.String("email", email),
			zap.Error(err),
		)
		return heuristic(email)
	}
	return status
}

func (c *APIClassifier) classifyRemote(ctx context.Context, email string) (clientDomain.VIPStatus, error) {
	body, err := json.Marshal(classifyRequest{Email: email})
	if err != nil {
		return clientDomain.VIPStatus{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return clientDomain.VIPStatus{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return clientDomain.VIPStatus{}, fmt.Errorf("vip api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return clientDomain.VIPStatus{}, fmt.Errorf("vip api returned status %d", resp.StatusCode)
	}

	var payload classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return clientDomain.VIPStatus{}, fmt.Errorf("failed to decode vip api response: %w", err)
	}
	return clientDomain.VIPStatus{IsVIP: payload.IsVIP, Tier: payload.Tier}, nil
}

// heuristic is the offline fallback: loyalty addresses carry a vip marker or
// one of the premium domains.
func heuristic(email string) clientDomain.VIPStatus {
	lower := strings.ToLower(email)
	if strings.Contains(lower, "vip") ||
		strings.HasSuffix(lower, "@premium.com") ||
		strings.HasSuffix(lower, "@gold.com") {
		return clientDomain.VIPStatus{IsVIP: true, Tier: "heuristic"}
	}
	return clientDomain.VIPStatus{}
}
