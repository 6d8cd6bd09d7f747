package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

type mockDashboardService struct {
	getMonthlySummaryFn     func(userID string, ref time.Time) (*services.MonthlySummary, error)
	getRecentTransactionsFn func(userID string, limit int) ([]models.Transaction, error)
}

func (m *mockDashboardService) GetMonthlySummary(userID string, ref time.Time) (*services.MonthlySummary, error) {
	if m.getMonthlySummaryFn != nil {
		return m.getMonthlySummaryFn(userID, ref)
	}
	return &services.MonthlySummary{}, nil
}

func (m *mockDashboardService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if m.getRecentTransactionsFn != nil {
		return m.getRecentTransactionsFn(userID, limit)
	}
	return []models.Transaction{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/dashboard/summary", handler.GetSummary)
	auth.GET("/dashboard/recent", handler.GetRecent)
	return r
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	t.Run("returns 200 with display strings", func(t *testing.T) {
		svc := &mockDashboardService{
			getMonthlySummaryFn: func(_ string, ref time.Time) (*services.MonthlySummary, error) {
				if !ref.IsZero() {
					t.Errorf("expected zero ref, got %v", ref)
				}
				return &services.MonthlySummary{
					Year:         2024,
					Month:        5,
					Income:       5000,
					Expense:      2500,
					Investment:   1000,
					Balance:      1500,
					CommittedPct: 70,
					HasData:      true,
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["income"].(float64) != 5000 {
			t.Errorf("expected income 5000, got %v", result["income"])
		}
		display := result["display"].(map[string]interface{})
		if display["income"] != "R$ 5.000,00" {
			t.Errorf("expected R$ 5.000,00, got %v", display["income"])
		}
		if display["committed_pct"] != "70,0%" {
			t.Errorf("expected 70,0%%, got %v", display["committed_pct"])
		}
	})

	t.Run("parses ref", func(t *testing.T) {
		svc := &mockDashboardService{
			getMonthlySummaryFn: func(_ string, ref time.Time) (*services.MonthlySummary, error) {
				if !ref.Equal(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("expected 2023-12-01, got %v", ref)
				}
				return &services.MonthlySummary{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/summary?ref=2023-12-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad ref", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/summary?ref=december", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on storage failure", func(t *testing.T) {
		svc := &mockDashboardService{
			getMonthlySummaryFn: func(_ string, _ time.Time) (*services.MonthlySummary, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/summary", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetRecent(t *testing.T) {
	t.Run("passes limit", func(t *testing.T) {
		svc := &mockDashboardService{
			getRecentTransactionsFn: func(_ string, limit int) ([]models.Transaction, error) {
				if limit != 5 {
					t.Errorf("expected limit 5, got %d", limit)
				}
				return []models.Transaction{{ID: 1}, {ID: 2}}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/recent?limit=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		rows := parseJSON(t, rec)["transactions"].([]interface{})
		if len(rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("returns 400 on bad limit", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/recent?limit=ten", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
