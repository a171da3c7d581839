// Package common holds handlers shared across modules: CSV/Excel export.
package common

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"maintlog/internal/handlers/worklogs"
	"maintlog/internal/store"
)

// Handler holds dependencies for export handlers.
type Handler struct {
	Store  *store.Store
	Logger *zap.Logger
}

// ExportWorkLogs handles GET /api/v1/worklogs/export. The dashboard
// filters apply, so what is exported is what is on screen.
func (h *Handler) ExportWorkLogs(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	logs, err := h.Store.ListWorkLogs(worklogs.FilterFromQuery(r))
	if err != nil {
		response500(w, err)
		return
	}

	headers := []string{"ID", "Date", "Category", "Description", "Status", "Branch", "Assigned By"}
	data := make([][]string, 0, len(logs))
	for _, l := range logs {
		data = append(data, []string{
			strconv.FormatInt(l.ID, 10), l.WorkDate, l.Category, l.Description, l.Status, l.Branch, l.AssignedBy,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Work Logs", headers, data)
	} else {
		exportCSV(w, "worklogs.csv", headers, data)
	}
}

// ExportDailyChecks handles GET /api/v1/daily-checks/export.
func (h *Handler) ExportDailyChecks(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	checks, err := h.Store.ListDailyChecks(r.URL.Query().Get("date"))
	if err != nil {
		response500(w, err)
		return
	}

	headers := []string{"ID", "Date", "Item", "Status", "Remark", "Checked By", "Created At"}
	data := make([][]string, 0, len(checks))
	for _, c := range checks {
		data = append(data, []string{
			strconv.FormatInt(c.ID, 10), c.CheckDate, c.ItemName, c.Status, c.Remark, c.CheckedBy, c.CreatedAt,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Daily Checks", headers, data)
	} else {
		exportCSV(w, "daily_checks.csv", headers, data)
	}
}

func response500(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), 500)
}

func exportCSV(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	cw.Write(headers)
	for _, row := range data {
		cw.Write(row)
	}
	cw.Flush()
}

func exportExcel(w http.ResponseWriter, sheet string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		response500(w, err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for rowIdx, row := range data {
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet+".xlsx"))
	f.Write(w)
}
