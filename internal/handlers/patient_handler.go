package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/listview"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/ui"
)

func (h *Handler) fetchPatients(ctx context.Context, st listview.State) (models.Page[models.User], error) {
	return h.API.ListPatients(ctx, st.Page, st.Limit)
}

var patientColumns = []ui.Column[models.User]{
	{Header: "ID", Cell: func(u models.User) ui.Cell { return ui.Text(u.DisplayID()) }},
	{Header: "Name", Cell: func(u models.User) ui.Cell { return ui.Text(u.FullName()) }},
	{Header: "Email", Cell: func(u models.User) ui.Cell { return ui.Text(u.Email) }},
	{Header: "Phone", Cell: func(u models.User) ui.Cell { return ui.Text(u.Phone) }},
	{Header: "Address", Cell: func(u models.User) ui.Cell { return ui.Text(u.Address.String()) }},
	{Header: "Registered", Cell: func(u models.User) ui.Cell { return ui.Text(ui.FormatDate(u.CreatedAt)) }},
}

// --- LIST PATIENTS ---
func (h *Handler) ListPatients(c *gin.Context) {
	snap := loadList(c, h, h.patients)
	rows := listview.FilterRows(snap.Rows, snap.State.Search, userSearchFields)
	table := ui.BuildTable(rows, patientColumns,
		func(u models.User) string { return u.ID },
		func(u models.User) string { return "/patients/" + u.ID },
		"No patients found")

	view := newListView(snap, "/patients", table)
	view.Layout = h.layout(c, "Patients")
	view.Heading = "Patients"
	h.render(c, http.StatusOK, "list.html", view)
}

type PatientView struct {
	Layout       `json:"-"`
	Patient      models.User `json:"patient"`
	Address      string      `json:"address"`
	Appointments ui.Table    `json:"appointments"`
	Error        string      `json:"error,omitempty"`
}

// --- SHOW PATIENT ---
func (h *Handler) ShowPatient(c *gin.Context) {
	id := c.Param("id")
	ctx := h.ctx(c)
	patient, err := h.API.GetUser(ctx, id)
	if err != nil {
		h.logger(c).Error().Err(err).Str("patient_id", id).Msg("failed to load patient")
		code := upstreamStatus(err)
		if code == http.StatusNotFound {
			h.renderError(c, code, "Patient not found.", "/patients")
			return
		}
		h.renderError(c, code, failure("Failed to load patient", err), "/patients")
		return
	}
	if patient.ID == "" {
		h.renderError(c, http.StatusNotFound, "Patient not found.", "/patients")
		return
	}

	view := PatientView{
		Layout:  h.layout(c, patient.FullName()),
		Patient: patient,
		Address: patient.Address.String(),
	}
	page, err := h.API.ListAppointments(ctx, client.AppointmentListParams{Page: 1, Limit: relatedLimit, PatientID: patient.ID})
	if err != nil {
		h.logger(c).Error().Err(err).Str("patient_id", id).Msg("failed to load patient appointments")
		view.Error = "Failed to load recent appointments."
	}
	b, _ := h.Refs.Bundle(ctx)
	view.Appointments = h.appointmentTable(b, page.Data, "patients/"+patient.ID)
	h.render(c, http.StatusOK, "patient.html", view)
}
