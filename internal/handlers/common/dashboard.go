package common

import (
	"log"
	"net/http"
	"sort"

	"fieldops/internal/models"
	"fieldops/internal/response"
	"fieldops/internal/store"
)

// DashboardKPIs are the headline counters of the home page.
type DashboardKPIs struct {
	Notifications struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Received  int `json:"received"`
		Completed int `json:"completed"`
		P1Active  int `json:"p1_active"`
	} `json:"notifications"`
	Incidents struct {
		Total int `json:"total"`
		Open  int `json:"open"`
	} `json:"incidents"`
	Permits struct {
		Total    int `json:"total"`
		Draft    int `json:"draft"`
		Approved int `json:"approved"`
		Closed   int `json:"closed"`
	} `json:"permits"`
}

// Dashboard handles GET /api/v1/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var k DashboardKPIs

	notifs, warn := h.Store.Load(store.Notifications)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	for _, row := range notifs.Rows {
		n := models.NotificationFromRow(row)
		k.Notifications.Total++
		switch n.Status {
		case "Pending":
			k.Notifications.Pending++
		case "Received":
			k.Notifications.Received++
		case "Completed":
			k.Notifications.Completed++
		}
		if n.Priority == "P1" && n.Status != "Completed" {
			k.Notifications.P1Active++
		}
	}

	incidents, warn := h.Store.Load(store.Incidents)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	for _, row := range incidents.Rows {
		k.Incidents.Total++
		if models.IncidentFromRow(row).Status == "Open" {
			k.Incidents.Open++
		}
	}

	permits, warn := h.Store.Load(store.Permits)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	for _, row := range permits.Rows {
		p := models.PermitFromRow(row)
		k.Permits.Total++
		switch p.Status {
		case "Draft":
			k.Permits.Draft++
		case "Approved":
			k.Permits.Approved++
		case "Closed":
			k.Permits.Closed++
		}
	}

	response.JSON(w, k)
}

// StatusCount is one bar of the status distribution chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TrendPoint is one day of the rounds in-range trend line.
type TrendPoint struct {
	Date         string  `json:"date"`
	InRangeRatio float64 `json:"in_range_ratio"`
	Readings     int     `json:"readings"`
}

// ChartData feeds the dashboard charts.
type ChartData struct {
	NotificationStatus []StatusCount `json:"notification_status"`
	RoundsTrend        []TrendPoint  `json:"rounds_trend"`
}

// DashboardCharts handles GET /api/v1/dashboard/charts.
func (h *Handler) DashboardCharts(w http.ResponseWriter, r *http.Request) {
	var data ChartData

	notifs, warn := h.Store.Load(store.Notifications)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	counts := map[string]int{}
	for _, row := range notifs.Rows {
		counts[models.NotificationFromRow(row).Status]++
	}
	data.NotificationStatus = []StatusCount{}
	for _, status := range []string{"Pending", "Received", "Completed"} {
		if counts[status] > 0 {
			data.NotificationStatus = append(data.NotificationStatus, StatusCount{Status: status, Count: counts[status]})
		}
	}

	execs, warn := h.Store.Load(store.RoundExecutions)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	type agg struct{ inRange, total int }
	byDay := map[string]*agg{}
	for _, row := range execs.Rows {
		e := models.RoundExecutionFromRow(row)
		if len(e.TS) < 10 {
			continue
		}
		day := e.TS[:10]
		a, ok := byDay[day]
		if !ok {
			a = &agg{}
			byDay[day] = a
		}
		a.total++
		if e.InRange {
			a.inRange++
		}
	}
	data.RoundsTrend = []TrendPoint{}
	for day, a := range byDay {
		data.RoundsTrend = append(data.RoundsTrend, TrendPoint{
			Date:         day,
			InRangeRatio: float64(a.inRange) / float64(a.total),
			Readings:     a.total,
		})
	}
	sort.Slice(data.RoundsTrend, func(i, j int) bool { return data.RoundsTrend[i].Date < data.RoundsTrend[j].Date })

	response.JSON(w, data)
}
