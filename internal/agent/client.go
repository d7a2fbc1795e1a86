// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/morganforge/docchat-tui/internal/model"
)

// Configuration constants for the agent API.
const (
	// DefaultTimeout bounds a single query round trip.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps the response body read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// askPath is the query endpoint on the agent service.
	askPath = "/api/v1/ask"
)

// User-facing fallback strings for the two failure outcomes.
const (
	// GenericAgentErrorText is used when the backend reports a failure
	// without supplying an explanation.
	GenericAgentErrorText = "Failed to get a response from the agent."

	// TransportErrorText is used when the call itself fails.
	TransportErrorText = "Network error while contacting the agent. Please check your connection and retry."
)

// sharedHTTPClient pools connections across all agent requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// RESULT TYPE
// =============================================================================

// Outcome discriminates the three ways a query can settle.
type Outcome int

const (
	// OutcomeOK: the call completed and the backend reported success.
	OutcomeOK Outcome = iota
	// OutcomeAgentError: the backend was reachable but reported a failure.
	OutcomeAgentError
	// OutcomeTransportError: the call itself failed (network, timeout,
	// malformed response). No partial data is synthesized.
	OutcomeTransportError
)

// Result is the normalized settlement of one query. Exactly one of the
// outcomes applies; Payload is non-nil only for OutcomeOK.
type Result struct {
	Outcome Outcome
	Payload *model.AgentAnswer
	Message string
}

// Ok reports whether the query succeeded.
func (r Result) Ok() bool {
	return r.Outcome == OutcomeOK
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// askRequest is the outbound query body.
type askRequest struct {
	Query   string `json:"query"`
	AgentID string `json:"agent_id"`
}

// answerPayload mirrors the backend's result object.
type answerPayload struct {
	Answer              string                  `json:"answer"`
	Sources             []model.SourceReference `json:"sources"`
	Confidence          float64                 `json:"confidence"`
	RetrievedPassages   int                     `json:"retrieved_passages"`
	QueryInterpretation string                  `json:"query_interpretation"`
}

// askEnvelope is the backend's response envelope. success plus a "success"
// status is the only OK path; every other combination is an error path.
type askEnvelope struct {
	Success  bool `json:"success"`
	Response struct {
		Status  string         `json:"status"`
		Result  *answerPayload `json:"result,omitempty"`
		Message string         `json:"message,omitempty"`
	} `json:"response"`
	Error string `json:"error,omitempty"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the remote question-answering agent.
type Client struct {
	baseURL    string
	agentID    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client bound to an agent endpoint and agent ID.
// The API key may be empty when the deployment does not require one.
func NewClient(baseURL, agentID, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		agentID:    agentID,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: sharedHTTPClient,
		log:        log,
	}
}

// WithHTTPClient sets a custom HTTP client (tests use this to remove the
// shared timeout).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// AgentID returns the agent identifier sent with every query.
func (c *Client) AgentID() string {
	return c.agentID
}

// keyFingerprint identifies the API key in logs without exposing it.
func (c *Client) keyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// Ask sends one query to the agent and returns the normalized settlement.
//
// Exactly one outbound attempt is made; there are no automatic retries.
// Ask never returns an error: all failures are folded into the Result.
func (c *Client) Ask(ctx context.Context, query string) Result {
	body, err := json.Marshal(askRequest{Query: query, AgentID: c.agentID})
	if err != nil {
		// Marshalling two strings cannot fail in practice; treated as
		// transport to keep the contract total.
		return c.transportFailure("marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return c.transportFailure("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure("do request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return c.transportFailure("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("agent returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("agent_id", c.agentID),
			zap.Duration("elapsed", time.Since(start)))
		return Result{Outcome: OutcomeTransportError, Message: TransportErrorText}
	}

	var env askEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return c.transportFailure("decode response", err)
	}

	if !env.Success || env.Response.Status != "success" {
		msg := env.Response.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = GenericAgentErrorText
		}
		c.log.Warn("agent reported failure",
			zap.String("status", env.Response.Status),
			zap.String("agent_id", c.agentID))
		return Result{Outcome: OutcomeAgentError, Message: msg}
	}

	payload := env.Response.Result
	if payload == nil {
		// Success with no result body: soft success, empty answer.
		payload = &answerPayload{}
	}

	c.log.Info("agent answered",
		zap.String("agent_id", c.agentID),
		zap.Float64("confidence", payload.Confidence),
		zap.Int("sources", len(payload.Sources)),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("key", c.keyFingerprint()))

	return Result{
		Outcome: OutcomeOK,
		Payload: &model.AgentAnswer{
			Text:           payload.Answer,
			Sources:        payload.Sources,
			Confidence:     payload.Confidence,
			RetrievedCount: payload.RetrievedPassages,
			Interpretation: payload.QueryInterpretation,
		},
	}
}

// transportFailure logs the underlying cause and returns the generic
// transport result. The raw error never reaches the UI.
func (c *Client) transportFailure(op string, err error) Result {
	c.log.Warn("agent call failed",
		zap.String("op", op),
		zap.String("agent_id", c.agentID),
		zap.Error(err))
	return Result{Outcome: OutcomeTransportError, Message: TransportErrorText}
}
