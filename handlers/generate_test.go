package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseReportRequest(t *testing.T) {
	newRequest := func(values url.Values) *reportRequest {
		r := httptest.NewRequest("POST", "/reports", strings.NewReader(values.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req, err := parseReportRequest(r)
		if err != nil {
			t.Fatalf("parseReportRequest: %v", err)
		}
		return &req
	}

	req := newRequest(url.Values{
		"upload":            {"abc_file.xlsx"},
		"dealer_name":       {"  Sharma Traders  "},
		"city":              {"Jaipur"},
		"order_date":        {"28-08-2026"},
		"freight_condition": {"To Pay"},
	})
	if req.Upload != "abc_file.xlsx" {
		t.Errorf("Upload = %q", req.Upload)
	}
	if req.DealerName != "Sharma Traders" {
		t.Errorf("DealerName = %q, want trimmed", req.DealerName)
	}
	if req.City != "Jaipur" || req.OrderDate != "28-08-2026" || req.FreightCondition != "To Pay" {
		t.Errorf("unexpected fields: %+v", req)
	}
}

func TestParseReportRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"no_upload", url.Values{"dealer_name": {"D"}}},
		{"no_dealer", url.Values{"upload": {"f.xlsx"}}},
		{"blank_dealer", url.Values{"upload": {"f.xlsx"}, "dealer_name": {"   "}}},
		{"empty", url.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/reports", strings.NewReader(tt.values.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if _, err := parseReportRequest(r); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseReportRequest_OptionalFieldsDefaultEmpty(t *testing.T) {
	values := url.Values{"upload": {"f.xlsx"}, "dealer_name": {"D"}}
	r := httptest.NewRequest("POST", "/reports", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := parseReportRequest(r)
	if err != nil {
		t.Fatalf("parseReportRequest: %v", err)
	}
	if req.City != "" || req.OrderDate != "" || req.FreightCondition != "" {
		t.Errorf("optional fields not empty: %+v", req)
	}
}
