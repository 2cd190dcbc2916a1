package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
)

func TestCreateGrid(t *testing.T) {
	t.Parallel()
	h := handlers.NewGridHandler(newStore(t))

	body := dto.GridRequest{
		Title:        "LGPD",
		Scope:        "Dados pessoais",
		Requirements: []dto.RequirementRequest{{Title: "Consent"}, {Title: "Retention"}},
	}
	rec := httptest.NewRecorder()
	h.CreateGrid(rec, newRequest(t, http.MethodPost, "/api/v1/grids", body, nil))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.GridResponse](t, rec)
	if len(resp.Requirements) != 2 || resp.Requirements[0].ID == "" {
		t.Errorf("Requirements = %+v, want 2 with ids", resp.Requirements)
	}
}

func TestCreateGrid_ValidationError(t *testing.T) {
	t.Parallel()
	h := handlers.NewGridHandler(newStore(t))

	rec := httptest.NewRecorder()
	h.CreateGrid(rec, newRequest(t, http.MethodPost, "/api/v1/grids", dto.GridRequest{}, nil))

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestUpdateGrid(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	g := seedGrid(t, s, "A")
	h := handlers.NewGridHandler(s)

	body := dto.GridRequest{Title: "Renamed", Requirements: []dto.RequirementRequest{{Title: "A"}, {Title: "B"}}}

	rec := httptest.NewRecorder()
	h.UpdateGrid(rec, newRequest(t, http.MethodPut, "/", body, map[string]string{"id": g.ID}))
	requireStatus(t, rec, http.StatusOK)
	if resp := decodeJSON[dto.GridResponse](t, rec); resp.Title != "Renamed" || len(resp.Requirements) != 2 {
		t.Errorf("response = %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.UpdateGrid(rec, newRequest(t, http.MethodPut, "/", body, map[string]string{"id": "missing"}))
	requireStatus(t, rec, http.StatusNotFound)
}

func TestDeleteGrid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		referenced bool
		want       int
	}{
		{name: "unused grid is removed", want: http.StatusNoContent},
		{name: "grid used by an audit is kept", referenced: true, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newStore(t)
			g := seedGrid(t, s, "A")
			if tt.referenced {
				_, err := s.AddAudit(context.Background(), audit.Draft{
					Title: "Q3", AuditorID: "u", GridID: g.ID, StartDate: "2024-07-01", EndDate: "2024-07-02",
				})
				require.NoError(t, err)
			}
			h := handlers.NewGridHandler(s)

			rec := httptest.NewRecorder()
			h.DeleteGrid(rec, newRequest(t, http.MethodDelete, "/", nil, map[string]string{"id": g.ID}))

			requireStatus(t, rec, tt.want)
			_, err := s.GetGrid(context.Background(), g.ID)
			if exists := err == nil; exists != tt.referenced {
				t.Errorf("grid exists = %v, want %v", exists, tt.referenced)
			}
		})
	}
}

func TestGetGrid_MissingParam(t *testing.T) {
	t.Parallel()
	h := handlers.NewGridHandler(newStore(t))

	rec := httptest.NewRecorder()
	h.GetGrid(rec, newRequest(t, http.MethodGet, "/", nil, map[string]string{"id": " "}))

	requireStatus(t, rec, http.StatusBadRequest)
}
