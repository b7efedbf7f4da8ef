package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type AppointmentListParams struct {
	Page                int
	Limit               int
	Status              string
	Search              string
	StartDate           string
	EndDate             string
	PatientID           string
	DoctorID            string
	VisitType           string
	RecommendedDoctorID string
	RespondedDoctorID   string
}

func (p AppointmentListParams) query() url.Values {
	return params{}.
		num("page", p.Page).
		num("limit", p.Limit).
		str("status", p.Status).
		str("search", p.Search).
		str("startDate", p.StartDate).
		str("endDate", p.EndDate).
		str("patientId", p.PatientID).
		str("doctorId", p.DoctorID).
		str("visitType", p.VisitType).
		str("recommendedDoctorId", p.RecommendedDoctorID).
		str("respondedDoctorId", p.RespondedDoctorID).
		values()
}

func (c *Client) ListAppointments(ctx context.Context, p AppointmentListParams) (models.Page[models.Appointment], error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/admin/appointments", query: p.query()})
	if err != nil {
		return models.Page[models.Appointment]{}, err
	}
	return decodePage[models.Appointment](body)
}

func (c *Client) GetAppointment(ctx context.Context, id string) (models.Appointment, error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/admin/appointments/" + url.PathEscape(id)})
	if err != nil {
		return models.Appointment{}, err
	}
	return decodeEntity[models.Appointment](body)
}

type AppointmentUpdate struct {
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// UpdateAppointment replaces the given fields with a PUT.
func (c *Client) UpdateAppointment(ctx context.Context, id string, upd AppointmentUpdate) (models.Appointment, error) {
	body, err := c.do(ctx, call{method: http.MethodPut, path: "/appointments/" + url.PathEscape(id), body: upd})
	if err != nil {
		return models.Appointment{}, err
	}
	return decodeEntity[models.Appointment](body)
}
