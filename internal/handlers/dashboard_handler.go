package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/daterange"
	"github.com/harentsoaR/medics-admin/internal/models"
)

const customRange = "custom"

// Chart is a line-chart series in the shape the browser charting library
// takes as its data option.
type Chart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label       string `json:"label"`
	Data        []int  `json:"data"`
	BorderColor string `json:"borderColor"`
	Fill        bool   `json:"fill"`
}

// trendChart maps the backend's trend buckets one to one onto chart points.
func trendChart(trends []models.Trend) Chart {
	ch := Chart{
		Labels:   make([]string, len(trends)),
		Datasets: []ChartDataset{{Label: "Appointments", Data: make([]int, len(trends)), BorderColor: "#0d6efd"}},
	}
	for i, t := range trends {
		ch.Labels[i] = t.Label
		ch.Datasets[0].Data[i] = t.Count
	}
	return ch
}

type DashboardView struct {
	Layout     `json:"-"`
	TimeFilter string                `json:"timeFilter"`
	StartDate  string                `json:"startDate"`
	EndDate    string                `json:"endDate"`
	Presets    []daterange.Preset    `json:"-"`
	Stats      models.DashboardStats `json:"stats"`
	Chart      Chart                 `json:"chart"`
	ChartJSON  string                `json:"-"`
	Error      string                `json:"error,omitempty"`
}

// --- DASHBOARD ---
// A preset range (?range=last-7-days) or explicit bounds (?startDate=&endDate=,
// sent as timeFilter=custom) each cost exactly one stats call.
func (h *Handler) Dashboard(c *gin.Context) {
	view := DashboardView{Layout: h.layout(c, "Dashboard"), Presets: daterange.Presets}

	key := strings.TrimSpace(c.Query("range"))
	start, end := c.Query("startDate"), c.Query("endDate")

	var (
		r   daterange.Range
		err error
	)
	if key == customRange || (key == "" && (start != "" || end != "")) {
		view.TimeFilter = customRange
		r, err = daterange.Custom(start, end)
	} else {
		if key == "" {
			key = daterange.Default
		}
		view.TimeFilter = key
		r, err = daterange.Resolve(key, h.Now().In(h.Location))
	}
	if err != nil {
		view.StartDate, view.EndDate = start, end
		view.Error = err.Error()
		view.Chart = trendChart(nil)
		view.ChartJSON = chartJSON(view.Chart)
		h.render(c, http.StatusBadRequest, "dashboard.html", view)
		return
	}
	if !r.Start.IsZero() {
		view.StartDate = r.StartDate()
	}
	if !r.End.IsZero() {
		view.EndDate = r.EndDate()
	}

	stats, err := h.API.DashboardStats(h.ctx(c), client.StatsParams{
		StartDate:  view.StartDate,
		EndDate:    view.EndDate,
		TimeFilter: view.TimeFilter,
	})
	code := http.StatusOK
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to load dashboard stats")
		view.Error = failure("Failed to load dashboard statistics", err)
		code = upstreamStatus(err)
	}
	view.Stats = stats
	view.Chart = trendChart(stats.AppointmentTrends)
	view.ChartJSON = chartJSON(view.Chart)
	h.render(c, code, "dashboard.html", view)
}

func chartJSON(ch Chart) string {
	b, err := json.Marshal(ch)
	if err != nil {
		return "{}"
	}
	return string(b)
}
