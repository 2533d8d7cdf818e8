package common

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"fieldops/internal/audit"
	"fieldops/internal/response"
	"fieldops/internal/store"
)

// ExportDataset handles GET /api/v1/export/{dataset}?format=csv|xlsx
// for any of the seven datasets.
func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request, name string) {
	ds, ok := store.ByName(name)
	if !ok {
		response.Err(w, "unknown dataset: "+name, 404)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	t, warn := h.Store.Load(ds)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	data := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		data = append(data, rec)
	}

	audit.LogAudit(h.Audit, nil, "export", audit.ActionExport, ds.Name, "",
		fmt.Sprintf("Exported %d rows as %s", len(data), format))

	switch format {
	case "xlsx":
		ExportExcel(w, ds.Name, t.Columns, data)
	case "csv":
		ExportCSV(w, ds.Name+".csv", t.Columns, data)
	default:
		response.Err(w, "unknown format: "+format, 400)
	}
}

// ExportCSV streams rows as a CSV attachment.
func ExportCSV(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		http.Error(w, "Failed to write CSV headers", 500)
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			http.Error(w, "Failed to write CSV row", 500)
			return
		}
	}
}

// ExportExcel writes rows as an XLSX attachment.
func ExportExcel(w http.ResponseWriter, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to create Excel sheet", 500)
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		http.Error(w, "Failed to create header style", 500)
		return
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", sheetName))
	if err := f.Write(w); err != nil {
		log.Printf("xlsx export error: %v", err)
	}
}
