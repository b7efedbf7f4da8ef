package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/listview"
	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/ui"
)

// relatedLimit is how many recent appointments a detail page shows.
const relatedLimit = 5

func (h *Handler) fetchDoctors(ctx context.Context, st listview.State) (models.Page[models.User], error) {
	return h.API.ListDoctors(ctx, st.Page, st.Limit)
}

var doctorColumns = []ui.Column[models.User]{
	{Header: "ID", Cell: func(u models.User) ui.Cell { return ui.Text(u.DisplayID()) }},
	{Header: "Name", Cell: func(u models.User) ui.Cell { return ui.Text(u.FullName()) }},
	{Header: "Email", Cell: func(u models.User) ui.Cell { return ui.Text(u.Email) }},
	{Header: "Phone", Cell: func(u models.User) ui.Cell { return ui.Text(u.Phone) }},
	{Header: "Address", Cell: func(u models.User) ui.Cell { return ui.Text(u.Address.String()) }},
	{Header: "Verified", Cell: func(u models.User) ui.Cell { return ui.Text(ui.YesNo(u.IsProfileVerified())) }},
	{Header: "Joined", Cell: func(u models.User) ui.Cell { return ui.Text(ui.FormatDate(u.CreatedAt)) }},
}

// --- LIST DOCTORS ---
func (h *Handler) ListDoctors(c *gin.Context) {
	snap := loadList(c, h, h.doctors)
	rows := listview.FilterRows(snap.Rows, snap.State.Search, userSearchFields)
	table := ui.BuildTable(rows, doctorColumns,
		func(u models.User) string { return u.ID },
		func(u models.User) string { return "/doctors/" + u.ID },
		"No doctors found")

	view := newListView(snap, "/doctors", table)
	view.Layout = h.layout(c, "Doctors")
	view.Heading = "Doctors"
	view.CreateLink = "/doctors/new"
	h.render(c, http.StatusOK, "list.html", view)
}

type DoctorView struct {
	Layout       `json:"-"`
	Doctor       models.User `json:"doctor"`
	Address      string      `json:"address"`
	Verified     bool        `json:"isProfileVerified"`
	Appointments ui.Table    `json:"appointments"`
	Error        string      `json:"error,omitempty"`
	Notice       string      `json:"notice,omitempty"`
}

// doctorView loads the doctor's recent appointments around an already
// fetched doctor. A failed appointment fetch only adds a banner.
func (h *Handler) doctorView(c *gin.Context, doc models.User) DoctorView {
	ctx := h.ctx(c)
	v := DoctorView{
		Layout:   h.layout(c, "Dr. "+doc.FullName()),
		Doctor:   doc,
		Address:  doc.Address.String(),
		Verified: doc.IsProfileVerified(),
	}
	page, err := h.API.ListAppointments(ctx, client.AppointmentListParams{Page: 1, Limit: relatedLimit, DoctorID: doc.ID})
	if err != nil {
		h.logger(c).Error().Err(err).Str("doctor_id", doc.ID).Msg("failed to load doctor appointments")
		v.Error = "Failed to load recent appointments."
	}
	b, _ := h.Refs.Bundle(ctx)
	v.Appointments = h.appointmentTable(b, page.Data, "doctors/"+doc.ID)
	return v
}

// loadDoctor answers the request itself and reports false when the doctor
// cannot be shown.
func (h *Handler) loadDoctor(c *gin.Context) (models.User, bool) {
	id := c.Param("id")
	doc, err := h.API.GetDoctor(h.ctx(c), id)
	if err != nil {
		h.logger(c).Error().Err(err).Str("doctor_id", id).Msg("failed to load doctor")
		code := upstreamStatus(err)
		if code == http.StatusNotFound {
			h.renderError(c, code, "Doctor not found.", "/doctors")
		} else {
			h.renderError(c, code, failure("Failed to load doctor", err), "/doctors")
		}
		return doc, false
	}
	if doc.ID == "" {
		h.renderError(c, http.StatusNotFound, "Doctor not found.", "/doctors")
		return doc, false
	}
	return doc, true
}

// --- SHOW DOCTOR ---
func (h *Handler) ShowDoctor(c *gin.Context) {
	doc, ok := h.loadDoctor(c)
	if !ok {
		return
	}
	view := h.doctorView(c, doc)
	if c.Query("saved") == "1" {
		view.Notice = "Verification status saved."
	}
	h.render(c, http.StatusOK, "doctor.html", view)
}

type verificationRequest struct {
	IsProfileVerified bool `json:"isProfileVerified" form:"isProfileVerified"`
}

// --- SAVE VERIFICATION ---
// The staged toggle is merged into the doctor's full profile and sent with a
// single PUT. When the save fails the page keeps showing the staged value next
// to the error; it is not reverted to the stored one.
func (h *Handler) SaveVerification(c *gin.Context) {
	var req verificationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request body", "/doctors/"+c.Param("id"))
		return
	}
	doc, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	profile := models.DocProfile{}
	if doc.DocProfile != nil {
		profile = *doc.DocProfile
	}
	profile.IsProfileVerified = req.IsProfileVerified

	updated, err := h.API.UpdateUser(h.ctx(c), doc.ID, client.UserUpdate{
		DocProfile: &profile,
		Country:    doc.Country,
		City:       doc.City,
		FCMToken:   doc.FCMToken,
	})
	if err != nil {
		h.logger(c).Error().Err(err).Str("doctor_id", doc.ID).Msg("failed to save verification")
		view := h.doctorView(c, doc)
		view.Verified = req.IsProfileVerified
		view.Error = failure("Failed to save verification status", err)
		h.render(c, upstreamStatus(err), "doctor.html", view)
		return
	}
	h.logger(c).Info().Str("doctor_id", doc.ID).Bool("verified", req.IsProfileVerified).Msg("doctor verification saved")

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/doctors/"+doc.ID+"?saved=1")
		return
	}
	if updated.ID == "" {
		updated = doc
		updated.DocProfile = &profile
	}
	view := h.doctorView(c, updated)
	view.Notice = "Verification status saved."
	h.render(c, http.StatusOK, "doctor.html", view)
}

type ReviewsView struct {
	Layout   `json:"-"`
	DoctorID string          `json:"doctorId"`
	Reviews  []models.Review `json:"reviews"`
	Average  float64         `json:"average"`
	Error    string          `json:"error,omitempty"`
}

// --- DOCTOR REVIEWS ---
func (h *Handler) DoctorReviews(c *gin.Context) {
	id := c.Param("id")
	view := ReviewsView{Layout: h.layout(c, "Reviews"), DoctorID: id, Reviews: []models.Review{}}

	reviews, err := h.API.DoctorReviews(h.ctx(c), id)
	if err != nil {
		h.logger(c).Error().Err(err).Str("doctor_id", id).Msg("failed to load reviews")
		view.Error = failure("Failed to load reviews", err)
		h.render(c, upstreamStatus(err), "reviews.html", view)
		return
	}
	view.Reviews = reviews
	if len(reviews) > 0 {
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		view.Average = sum / float64(len(reviews))
	}
	h.render(c, http.StatusOK, "reviews.html", view)
}
