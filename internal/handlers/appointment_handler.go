package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/listview"
	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/ui"
)

func (h *Handler) fetchAppointments(ctx context.Context, st listview.State) (models.Page[models.Appointment], error) {
	return h.API.ListAppointments(ctx, client.AppointmentListParams{
		Page:                st.Page,
		Limit:               st.Limit,
		Status:              st.Status,
		Search:              st.Search,
		StartDate:           st.StartDate,
		EndDate:             st.EndDate,
		PatientID:           st.PatientID,
		DoctorID:            st.DoctorID,
		VisitType:           st.VisitType,
		RecommendedDoctorID: st.RecommendedDoctorID,
		RespondedDoctorID:   st.RespondedDoctorID,
	})
}

// appointmentColumns renders appointment rows; statuses come from reference data.
func (h *Handler) appointmentColumns(b models.ReferenceBundle) []ui.Column[models.Appointment] {
	statuses := b.AppointmentStatusList()
	payments := b.PaymentStatusList()
	visits := b.VisitTypeList()

	return []ui.Column[models.Appointment]{
		{Header: "ID", Cell: func(a models.Appointment) ui.Cell { return ui.Text(a.DisplayID()) }},
		{Header: "Patient", Cell: func(a models.Appointment) ui.Cell { return ui.Text(refName(a.Patient)) }},
		{Header: "Doctor", Cell: func(a models.Appointment) ui.Cell { return ui.Text(a.DoctorName()) }},
		{Header: "Scheduled", Cell: func(a models.Appointment) ui.Cell { return ui.Text(h.scheduled(a)) }},
		{Header: "Visit", Cell: func(a models.Appointment) ui.Cell {
			if a.VisitType == "" {
				return ui.Text("")
			}
			return ui.Text(ui.StatusLabel(visits, a.VisitType))
		}},
		{Header: "Status", Cell: func(a models.Appointment) ui.Cell {
			return ui.Badge(ui.StatusLabel(statuses, a.Status), ui.AppointmentStatusStyle(a.Status))
		}},
		{Header: "Payment", Cell: func(a models.Appointment) ui.Cell {
			if a.PaymentStatus == "" {
				return ui.Text("")
			}
			return ui.Badge(ui.StatusLabel(payments, a.PaymentStatus), ui.PaymentStatusStyle(a.PaymentStatus))
		}},
	}
}

// appointmentTable renders rows whose links return to from.
func (h *Handler) appointmentTable(b models.ReferenceBundle, rows []models.Appointment, from string) ui.Table {
	return ui.BuildTable(rows, h.appointmentColumns(b),
		func(a models.Appointment) string { return a.ID },
		func(a models.Appointment) string { return withFrom("/appointments/"+a.ID, from) },
		"No appointments found")
}

func refName(r models.UserRef) string {
	if name := r.FullName(); name != "" {
		return name
	}
	return r.ID
}

func (h *Handler) scheduled(a models.Appointment) string {
	start, ok := a.Start()
	if !ok {
		return ""
	}
	return ui.FormatDateTime(start.In(h.Location))
}

// --- LIST APPOINTMENTS ---
func (h *Handler) ListAppointments(c *gin.Context) {
	snap := loadList(c, h, h.appointments)
	b, _ := h.Refs.Bundle(h.ctx(c))
	view := newListView(snap, "/appointments", h.appointmentTable(b, snap.Rows, ""))
	view.Layout = h.layout(c, "Appointments")
	view.Heading = "Appointments"
	view.DateFilter = true
	view.Statuses = b.AppointmentStatusList()
	h.render(c, http.StatusOK, "list.html", view)
}

// AppointmentView is the appointment detail page, including the reschedule modal.
type AppointmentView struct {
	Layout         `json:"-"`
	Appointment    models.Appointment `json:"appointment"`
	StatusLabel    string             `json:"statusLabel"`
	StatusStyle    ui.Style           `json:"statusStyle"`
	PaymentLabel   string             `json:"paymentLabel"`
	PaymentStyle   ui.Style           `json:"paymentStyle"`
	ServiceLabel   string             `json:"serviceLabel"`
	VisitLabel     string             `json:"visitLabel"`
	ModeLabel      string             `json:"modeLabel"`
	Scheduled      string             `json:"scheduled"`
	ScheduledInput string             `json:"-"`
	From           string             `json:"from,omitempty"`
	BackLink       string             `json:"backLink"`
	Editing        bool               `json:"editing"`
	Error          string             `json:"error,omitempty"`
	Notice         string             `json:"notice,omitempty"`
}

// fromPattern whitelists the screens an appointment can be opened from.
var fromPattern = regexp.MustCompile(`^(?:(?:doctors|patients)/[A-Za-z0-9_-]+|dashboard)$`)

func safeFrom(from string) string {
	from = strings.Trim(strings.TrimSpace(from), "/")
	if fromPattern.MatchString(from) {
		return from
	}
	return ""
}

func backLink(from string) string {
	if from == "" {
		return "/appointments"
	}
	return "/" + from
}

func (h *Handler) appointmentView(c *gin.Context, a models.Appointment, from string) AppointmentView {
	b, _ := h.Refs.Bundle(h.ctx(c))
	v := AppointmentView{
		Layout:       h.layout(c, "Appointment "+a.DisplayID()),
		Appointment:  a,
		StatusLabel:  ui.StatusLabel(b.AppointmentStatusList(), a.Status),
		StatusStyle:  ui.AppointmentStatusStyle(a.Status),
		PaymentLabel: ui.StatusLabel(b.PaymentStatusList(), a.PaymentStatus),
		PaymentStyle: ui.PaymentStatusStyle(a.PaymentStatus),
		ServiceLabel: ui.StatusLabel(b.ServiceTypeList(), a.ServiceType),
		VisitLabel:   ui.StatusLabel(b.VisitTypeList(), a.VisitType),
		ModeLabel:    ui.StatusLabel(b.AppointmentModeList(), a.AppointmentMode),
		Scheduled:    ui.Or(h.scheduled(a)),
		From:         from,
		BackLink:     backLink(from),
	}
	if start, ok := a.Start(); ok {
		v.ScheduledInput = start.In(h.Location).Format(ui.InputLayout)
	}
	return v
}

// --- SHOW APPOINTMENT ---
func (h *Handler) ShowAppointment(c *gin.Context) {
	from := safeFrom(c.Query("from"))
	appt, err := h.API.GetAppointment(h.ctx(c), c.Param("id"))
	if err != nil {
		h.logger(c).Error().Err(err).Str("appointment_id", c.Param("id")).Msg("failed to load appointment")
		code := upstreamStatus(err)
		if code == http.StatusNotFound {
			h.renderError(c, code, "Appointment not found.", backLink(from))
			return
		}
		h.renderError(c, code, failure("Failed to load appointment", err), backLink(from))
		return
	}
	if appt.ID == "" {
		h.renderError(c, http.StatusNotFound, "Appointment not found.", backLink(from))
		return
	}

	view := h.appointmentView(c, appt, from)
	view.Editing = c.Query("edit") == "1"
	if c.Query("saved") == "1" {
		view.Notice = "Appointment rescheduled."
	}
	h.render(c, http.StatusOK, "appointment.html", view)
}

type scheduleRequest struct {
	ScheduledAt string `json:"scheduledAt" form:"scheduledAt"`
	From        string `json:"from" form:"from"`
}

// parseScheduledAt accepts RFC 3339 from API callers and the datetime-local
// format browsers submit, read in the console's location.
func (h *Handler) parseScheduledAt(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(ui.InputLayout, v, h.Location); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// --- RESCHEDULE APPOINTMENT ---
func (h *Handler) RescheduleAppointment(c *gin.Context) {
	id := c.Param("id")
	var req scheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request body", "/appointments/"+id)
		return
	}
	from := safeFrom(req.From)
	if from == "" {
		from = safeFrom(c.Query("from"))
	}
	detail := withFrom("/appointments/"+id, from)

	at, ok := h.parseScheduledAt(req.ScheduledAt)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "Please pick a valid date and time.", detail)
		return
	}

	ctx := h.ctx(c)
	at = at.UTC()
	updated, err := h.API.UpdateAppointment(ctx, id, client.AppointmentUpdate{ScheduledAt: &at})
	if err != nil {
		h.logger(c).Error().Err(err).Str("appointment_id", id).Msg("failed to reschedule appointment")
		h.renderError(c, upstreamStatus(err), failure("Failed to update appointment", err), detail)
		return
	}
	h.logger(c).Info().Str("appointment_id", id).Time("scheduled_at", at).Msg("appointment rescheduled")

	// re-read so the patient and doctor come back populated
	appt, err := h.API.GetAppointment(ctx, id)
	if err != nil || appt.ID == "" {
		appt = updated
		appt.ScheduledAt = &at
		appt.ScheduledRange = nil
		if appt.ID == "" {
			appt.ID = id
		}
	}
	h.Notifier.AppointmentRescheduled(appt)

	if middleware.WantsHTML(c) {
		sep := "?"
		if strings.Contains(detail, "?") {
			sep = "&"
		}
		c.Redirect(http.StatusSeeOther, detail+sep+"saved=1")
		return
	}
	view := h.appointmentView(c, appt, from)
	view.Notice = "Appointment rescheduled."
	h.render(c, http.StatusOK, "appointment.html", view)
}
