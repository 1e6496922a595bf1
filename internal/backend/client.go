// Package backend implements the HTTP client for the Sap query endpoint.
// One POST per user turn; no streaming, no auth, no retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	saperrors "github.com/nepalflora/sap/internal/errors"
	"github.com/nepalflora/sap/internal/logger"
)

// QueryRequest is the body of POST /query. Nil pointers serialize to JSON
// null, which the backend treats as "not provided".
type QueryRequest struct {
	Text        *string `json:"text"`
	ImageBase64 *string `json:"image_base64"` // raw base64, no data-URL prefix
	SessionID   string  `json:"session_id"`
}

// RetrievedItem is one document reference from the retrieval arms.
type RetrievedItem struct {
	ID       string                 `json:"id"`
	Source   string                 `json:"source,omitempty"`
	Text     string                 `json:"text"`
	Score    *float64               `json:"score,omitempty"`
	RRFScore *float64               `json:"rrf_score,omitempty"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

// QueryResponse is the decoded body of a successful query. Only Answer is
// required; the rest enriches the transcript display. Unknown fields are
// ignored.
type QueryResponse struct {
	SessionID string          `json:"session_id"`
	Mode      string          `json:"mode"`
	Caption   *string         `json:"caption"`
	Answer    string          `json:"answer"`
	Retrieved []RetrievedItem `json:"retrieved"`
}

// Client talks to one Sap backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. No request timeout
// is set: a query runs to completion or failure exactly once, and captioning
// an image on the backend can legitimately take a while.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// QueryURL returns the full URL the client posts to.
func (c *Client) QueryURL() string {
	return c.baseURL + "/query"
}

// Query sends one request and decodes the response. The context is only used
// to abandon the request if the program is shutting down.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	log := logger.WithComponent("backend")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, saperrors.BackendBadResponse(err)
	}

	url := c.QueryURL()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, saperrors.BackendRequestFailed(url, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Debug("sending query",
		"url", url,
		"hasText", req.Text != nil,
		"hasImage", req.ImageBase64 != nil,
		"sessionID", req.SessionID,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("query request failed", "url", url, "error", err)
		return nil, saperrors.BackendRequestFailed(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Error("query returned bad status", "url", url, "status", resp.StatusCode)
		return nil, saperrors.BackendBadStatus(url, resp.StatusCode)
	}

	var out QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("query response is not valid JSON", "url", url, "error", err)
		return nil, saperrors.BackendBadResponse(err)
	}

	log.Debug("query answered",
		"mode", out.Mode,
		"answerLen", len(out.Answer),
		"retrieved", len(out.Retrieved),
	)
	return &out, nil
}
