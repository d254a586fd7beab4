package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/foremenchoice/chitledger/internal/auth"
	"github.com/foremenchoice/chitledger/internal/service"
	"github.com/foremenchoice/chitledger/internal/storage/sqlite"
)

// setupTestServer builds the full HTTP stack over a temp database and
// returns a ready-to-use base URL plus an operator token.
func setupTestServer(t *testing.T) (string, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chitledger-http-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := New(
		service.NewGroupService(store),
		service.NewSubscriberService(store),
		service.NewEnrollmentService(store),
		service.NewInstallmentService(store),
		service.NewPaymentService(store),
		service.NewDividendService(store),
		service.NewReportService(store),
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager("test-secret", time.Hour),
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	var registered authResponse
	doJSON(t, ts.URL, http.MethodPost, "/api/v1/auth/register", "", registerRequest{
		Email:       "operator@example.com",
		DisplayName: "Operator",
		Password:    "correct horse",
	}, http.StatusCreated, &registered)

	return ts.URL, registered.Token
}

// doJSON sends a JSON request and decodes the response into out when the
// status matches.
func doJSON(t *testing.T, baseURL, method, path, token string, body any, wantStatus int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errBody map[string]string
		json.NewDecoder(resp.Body).Decode(&errBody)
		t.Fatalf("%s %s = %d, want %d (body %v)", method, path, resp.StatusCode, wantStatus, errBody)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
}

func TestCSVExport(t *testing.T) {
	url, token := setupTestServer(t)

	// one group, one member, one recorded payment to export
	var group groupResponse
	doJSON(t, url, http.MethodPost, "/api/v1/groups", token, groupRequest{
		Name:                "CSV Group",
		Value:               60000,
		NumberOfSubscribers: 12,
		Duration:            12,
		StartDate:           "2025-01-31",
	}, http.StatusCreated, &group)

	var sub subscriberResponse
	doJSON(t, url, http.MethodPost, "/api/v1/subscribers", token, subscriberRequest{
		Name:        "Ravi",
		PhoneNumber: "9876543211",
	}, http.StatusCreated, &sub)

	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/enrollments", group.ID), token, enrollRequest{
		SubscriberID:       sub.ID,
		AssignedChitNumber: 1,
		JoinDate:           "2025-01-15",
	}, http.StatusCreated, nil)

	var schedule []installmentResponse
	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/installments", group.ID), token, nil, http.StatusCreated, &schedule)

	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/installments/%s/payments", schedule[0].ID), token, paymentRequest{
		SubscriberID: sub.ID,
		Amount:       100,
	}, http.StatusCreated, nil)

	req, err := http.NewRequest(http.MethodGet, url+"/api/v1/reports/payments.csv", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/csv; charset=utf-8", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "payments.csv") {
		t.Errorf("Content-Disposition = %q, want an attachment named payments.csv", cd)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	body := strings.TrimPrefix(string(raw), "\ufeff")
	if len(body) == len(raw) {
		t.Error("expected a UTF-8 BOM prefix")
	}

	lines := strings.Split(strings.TrimRight(body, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one data row, got %d lines: %q", len(lines), body)
	}
	if lines[0] != "payment_date,subscriber,group,month,amount_paid" {
		t.Errorf("header = %q", lines[0])
	}
	fields := strings.Split(lines[1], ",")
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %q", lines[1])
	}
	if fields[1] != "Ravi" || fields[2] != "CSV Group" || fields[3] != "1" || fields[4] != "100.00" {
		t.Errorf("unexpected data row: %q", lines[1])
	}
}

func TestAuthRequired(t *testing.T) {
	url, _ := setupTestServer(t)

	doJSON(t, url, http.MethodGet, "/api/v1/groups", "", nil, http.StatusUnauthorized, nil)
	doJSON(t, url, http.MethodGet, "/api/v1/groups", "not-a-jwt", nil, http.StatusUnauthorized, nil)
}

func TestLogin(t *testing.T) {
	url, _ := setupTestServer(t)

	var resp authResponse
	doJSON(t, url, http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    "operator@example.com",
		Password: "correct horse",
	}, http.StatusOK, &resp)
	if resp.Token == "" {
		t.Error("expected a token on login")
	}

	doJSON(t, url, http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    "operator@example.com",
		Password: "wrong",
	}, http.StatusUnauthorized, nil)
}

func TestGroupLifecycleOverHTTP(t *testing.T) {
	url, token := setupTestServer(t)

	commission := 2.0
	create := groupRequest{
		Name:                        "Street Chit",
		Value:                       60000,
		NumberOfSubscribers:         12,
		Duration:                    12,
		StartDate:                   "2025-01-31",
		ForemanCommissionPercentage: &commission,
	}

	var group groupResponse
	doJSON(t, url, http.MethodPost, "/api/v1/groups", token, create, http.StatusCreated, &group)
	if group.InstallmentAmount != 5000 {
		t.Errorf("InstallmentAmount = %v, want 5000", group.InstallmentAmount)
	}

	// duplicate name conflicts
	doJSON(t, url, http.MethodPost, "/api/v1/groups", token, create, http.StatusConflict, nil)

	// malformed date is a bad request
	bad := create
	bad.Name = "Another"
	bad.StartDate = "31-01-2025"
	doJSON(t, url, http.MethodPost, "/api/v1/groups", token, bad, http.StatusBadRequest, nil)

	var groups []groupResponse
	doJSON(t, url, http.MethodGet, "/api/v1/groups", token, nil, http.StatusOK, &groups)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	doJSON(t, url, http.MethodGet, "/api/v1/groups/no-such-id", token, nil, http.StatusNotFound, nil)

	// schedule, enroll, auction, dues
	var sub subscriberResponse
	doJSON(t, url, http.MethodPost, "/api/v1/subscribers", token, subscriberRequest{
		Name:        "Ravi",
		PhoneNumber: "9876543210",
	}, http.StatusCreated, &sub)

	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/enrollments", group.ID), token, enrollRequest{
		SubscriberID:       sub.ID,
		AssignedChitNumber: 1,
		JoinDate:           "2025-01-15",
	}, http.StatusCreated, nil)

	var schedule []installmentResponse
	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/installments", group.ID), token, nil, http.StatusCreated, &schedule)
	if len(schedule) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(schedule))
	}
	if schedule[1].DueDate != "2025-02-28" {
		t.Errorf("month 2 due date = %s, want 2025-02-28", schedule[1].DueDate)
	}

	// second generation conflicts
	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/installments", group.ID), token, nil, http.StatusConflict, nil)

	var auctioned installmentResponse
	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/installments/%s/auction", schedule[0].ID), token, auctionRequest{
		PrizeAmount:        57000,
		WinnerSubscriberID: sub.ID,
	}, http.StatusOK, &auctioned)
	if !auctioned.IsAuctionConducted {
		t.Error("expected auction to be recorded")
	}

	doJSON(t, url, http.MethodPost, fmt.Sprintf("/api/v1/installments/%s/payments", schedule[0].ID), token, paymentRequest{
		SubscriberID: sub.ID,
		Amount:       5000,
	}, http.StatusCreated, nil)

	var dues []duesStatusResponse
	doJSON(t, url, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/dues?month=1", group.ID), token, nil, http.StatusOK, &dues)
	if len(dues) != 1 || dues[0].Status != "Paid" {
		t.Errorf("unexpected dues: %+v", dues)
	}

	// enrolled group refuses a guarded delete
	doJSON(t, url, http.MethodDelete, "/api/v1/groups/"+group.ID, token, nil, http.StatusConflict, nil)

	var dashboard dashboardResponse
	doJSON(t, url, http.MethodGet, "/api/v1/reports/dashboard", token, nil, http.StatusOK, &dashboard)
	if dashboard.ActiveGroups != 1 {
		t.Errorf("ActiveGroups = %d, want 1", dashboard.ActiveGroups)
	}
	if len(dashboard.RecentPayments) != 1 {
		t.Errorf("expected one recent payment, got %d", len(dashboard.RecentPayments))
	}
}
