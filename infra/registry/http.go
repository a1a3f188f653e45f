// Package registry provides crew registry sources: the live HTTP client, a
// SQLite read-through cache, and a fallback composition of the two.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fawsd/crewrotation/core/model"
	"github.com/fawsd/crewrotation/infra/logger"
)

const (
	seamenPath   = "/get-seamen"
	mutationPath = "/get-mutation"
)

// HTTPClient fetches the crew and mutation tables from the registry service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// NewHTTPClient creates a client for the registry at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.New("registry-client"),
	}
}

// wireNumber accepts a JSON number, a quoted number, or null. The registry
// export is inconsistent about which one it delivers per field.
type wireNumber string

func (n *wireNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*n = wireNumber(s)
	return nil
}

// seamanWire mirrors the registry's crew row.
type seamanWire struct {
	SeamanCode   wireNumber `json:"seamancode"`
	SeafarerCode string     `json:"seafarercode"`
	Name         string     `json:"name"`
	LastPosition string     `json:"last_position"`
	LastLocation string     `json:"last_location"`
	PrevLocation string     `json:"prev_location"`
	Certificate  string     `json:"certificate"`
	Age          wireNumber `json:"age"`
	Experience   string     `json:"experience"`
	Fleet        string     `json:"fleet"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	DayRemains   wireNumber `json:"day_remains"`
	DayElapsed   wireNumber `json:"day_elapsed"`
	Status       string     `json:"status"`
	Phone        string     `json:"phone_number_1"`
}

type mutationWire struct {
	SeamanCode      wireNumber `json:"seamancode"`
	TransactionDate string     `json:"transactiondate"`
	FromVessel      string     `json:"fromvesselname"`
	ToVessel        string     `json:"tovesselname"`
	FromRank        string     `json:"fromrankname"`
	ToRank          string     `json:"torankname"`
}

// FetchCrew retrieves the full crew table.
func (c *HTTPClient) FetchCrew(ctx context.Context) ([]model.CrewRecord, error) {
	// The registry expects an all-empty filter object for a full export.
	filter := map[string]any{
		"age": 0, "status": "", "education": "", "experience": "",
		"certificate": "", "last_location": "", "last_position": "",
	}
	var envelope struct {
		Data []seamanWire `json:"data_seamen"`
	}
	if err := c.post(ctx, seamenPath, filter, &envelope); err != nil {
		return nil, fmt.Errorf("fetch crew: %w", err)
	}
	out := make([]model.CrewRecord, 0, len(envelope.Data))
	for _, w := range envelope.Data {
		out = append(out, model.CrewRecord{
			SeamanCode:   wireInt(w.SeamanCode),
			SeafarerCode: w.SeafarerCode,
			Name:         w.Name,
			Rank:         w.LastPosition,
			Location:     w.LastLocation,
			PrevLocation: w.PrevLocation,
			Certificate:  w.Certificate,
			Age:          wireInt(w.Age),
			Experience:   w.Experience,
			Fleet:        w.Fleet,
			StartDate:    w.StartDate,
			EndDate:      w.EndDate,
			DayRemains:   string(w.DayRemains),
			DayElapsed:   string(w.DayElapsed),
			Status:       w.Status,
			Phone:        w.Phone,
		})
	}
	c.log.Infof("fetched %d crew records", len(out))
	return out, nil
}

// FetchMutations retrieves the mutation table for the configured window.
func (c *HTTPClient) FetchMutations(ctx context.Context) ([]model.MutationRecord, error) {
	filter := map[string]any{
		"seaman_name":        "",
		"transaction_date_1": "01/01/2020",
		"transaction_date_2": time.Now().Format("02/01/2006"),
		"from_rank_name":     "",
		"to_rank_name":       "",
		"from_vessel_code":   "",
		"to_vessel_code":     "",
		"jenis":              "",
	}
	var envelope struct {
		Data []mutationWire `json:"data_mutation"`
	}
	if err := c.post(ctx, mutationPath, filter, &envelope); err != nil {
		return nil, fmt.Errorf("fetch mutations: %w", err)
	}
	out := make([]model.MutationRecord, 0, len(envelope.Data))
	for _, w := range envelope.Data {
		date, _ := model.ParseDate(w.TransactionDate)
		out = append(out, model.MutationRecord{
			SeamanCode:      wireInt(w.SeamanCode),
			TransactionDate: date,
			FromVessel:      w.FromVessel,
			ToVessel:        w.ToVessel,
			FromRank:        w.FromRank,
			ToRank:          w.ToRank,
		})
	}
	c.log.Infof("fetched %d mutation records", len(out))
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, into any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, b)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func wireInt(n wireNumber) int {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
