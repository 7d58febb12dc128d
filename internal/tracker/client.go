package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ReportDetails is the tracker's view of a report.
type ReportDetails struct {
	ID          string    `json:"id"`
	ReportID    string    `json:"reportId"`
	Status      string    `json:"status"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

type lookupEnvelope struct {
	Success bool           `json:"success"`
	Report  *ReportDetails `json:"report"`
}

// Client fetches reports from the lookup endpoint. Lookups carry no
// per-request timeout; cancellation comes from the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Fetch looks up a report by its public id and unwraps the
// {success, report} envelope.
func (c *Client) Fetch(ctx context.Context, reportID string) (*ReportDetails, error) {
	u := c.baseURL + "/api/reports/" + url.PathEscape(reportID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report lookup returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope lookupEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Report == nil {
		return nil, fmt.Errorf("report lookup returned an empty envelope")
	}

	return envelope.Report, nil
}
