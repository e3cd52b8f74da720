package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the spreadsheet-backed sync endpoint (a Google Apps Script
// web app). Reads are read-modify-replace snapshots; writes are
// fire-and-forget: the response body is not parsed and HTTP completion is the
// only acknowledgment.
type Client interface {
	// GetData pulls the full registry snapshot.
	GetData(ctx context.Context, endpoint string) (Snapshot, error)

	// Post sends a JSON action body. Callers get no confirmation beyond
	// HTTP-level completion.
	Post(ctx context.Context, endpoint string, body any) error

	// Ping probes reachability before credential checks.
	Ping(ctx context.Context, endpoint string) error
}

// Snapshot mirrors the getData response shape. Users and report accounts are
// only present in newer endpoint revisions.
type Snapshot struct {
	Branches       []BranchPayload  `json:"branches"`
	Jobs           []JobPayload     `json:"jobs"`
	Users          []UserPayload    `json:"users,omitempty"`
	ReportAccounts []AccountPayload `json:"reportAccounts,omitempty"`
}

type BranchPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

type JobPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type UserPayload struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	NationalID      string `json:"nationalId"`
	Password        string `json:"password,omitempty"`
	Role            string `json:"role"`
	DeviceID        string `json:"deviceId,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	DefaultBranchID string `json:"defaultBranchId,omitempty"`
	Registration    string `json:"registrationDate,omitempty"`
}

type AccountPayload struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"password,omitempty"`
	AllowedJobs []string `json:"allowedJobs"`
}

// UpdateSystemPayload is the bulk upsert body: the remote collections are
// wholesale-replaced, not patched.
type UpdateSystemPayload struct {
	Action         string           `json:"action"`
	Branches       []BranchPayload  `json:"branches"`
	Jobs           []JobPayload     `json:"jobs"`
	Users          []UserPayload    `json:"users"`
	ReportAccounts []AccountPayload `json:"reportAccounts"`
	AdminUsername  string           `json:"adminUsername"`
	AdminPassword  string           `json:"adminPassword"`
}

type httpClient struct {
	client *http.Client
}

// NewClient builds a Client with a bounded request timeout. The endpoint
// contract itself specifies no timeout policy, so the bound lives here.
func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		client: &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) GetData(ctx context.Context, endpoint string) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?action=getData", nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build getData request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getData request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("getData returned status %d", resp.StatusCode)
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("decode getData response: %w", err)
	}

	return snapshot, nil
}

func (c *httpClient) Post(ctx context.Context, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal post body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	// Fire-and-forget: drain so the connection can be reused, ignore content.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *httpClient) Ping(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
