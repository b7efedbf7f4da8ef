package models

// Page is the paginated list envelope returned by every list endpoint.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages,omitempty"`
}

// Pages derives the page count when the backend did not send one.
func (p Page[T]) Pages() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	if p.Limit <= 0 {
		return 1
	}
	n := (p.Total + p.Limit - 1) / p.Limit
	if n < 1 {
		return 1
	}
	return n
}

type DashboardStats struct {
	TotalAppointments int     `json:"totalAppointments"`
	NetRevenue        float64 `json:"netRevenue"`
	Profit            float64 `json:"profit"`
	DoctorOnBoarded   int     `json:"doctorOnBoarded"`
	AppointmentTrends []Trend `json:"appointmentTrends"`
}

type Trend struct {
	Label string `json:"_id"`
	Count int    `json:"count"`
}
