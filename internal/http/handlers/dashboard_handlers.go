package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/pdv-dashboard/internal/export"
	mw "github.com/rogerio-castellano/pdv-dashboard/internal/http/middleware"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetDashboardHandler godoc
// @Summary Dashboard statistics for the signed-in user
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "failed to load dashboard"
// @Router /dashboard [get]
func (s *Server) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dashboard.Load(r.Context())
	if err != nil {
		s.log.Error("dashboard load failed", "err", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	resp := DashboardResponse{
		User:    mw.GetUserEmail(r),
		PdvName: s.pdvName(r.Context()),
		Stats:   snap,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		s.log.Warn("failed to write JSON response", "err", err)
	}
}

// ExportDashboardHandler godoc
// @Summary Download the dashboard statistics as a spreadsheet
// @Tags dashboard
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "failed to load dashboard"
// @Router /dashboard/export [get]
func (s *Server) ExportDashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dashboard.Load(r.Context())
	if err != nil {
		s.log.Error("dashboard load failed", "err", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, s.pdvName(r.Context()), snap); err != nil {
		s.log.Error("build workbook", "err", err)
		http.Error(w, "failed to export dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.xlsx"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Warn("failed to write workbook", "err", err)
	}
}

// pdvName is display-only: any problem reading the setting falls back to the default name.
func (s *Server) pdvName(ctx context.Context) string {
	q := repo.From(repo.PdvSettings).Select("pdv_name").Order("created_at", false).Take(1)
	rows, err := s.store.List(ctx, q)
	if err != nil {
		s.log.Warn("read pdv settings", "err", err)
		return models.DefaultPdvName
	}
	if len(rows) == 0 {
		return models.DefaultPdvName
	}
	setting, err := repo.DecodePdvSetting(rows[0])
	if err != nil || strings.TrimSpace(setting.PdvName) == "" {
		return models.DefaultPdvName
	}
	return setting.PdvName
}
