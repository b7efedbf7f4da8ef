package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/session"
	"github.com/harentsoaR/medics-admin/internal/store"
	"github.com/harentsoaR/medics-admin/internal/wizard"
)

type WizardView struct {
	Layout    `json:"-"`
	Step      int                 `json:"step"`
	Steps     int                 `json:"steps"`
	StepTitle string              `json:"stepTitle"`
	Final     bool                `json:"final"`
	Fields    []wizard.FieldValue `json:"fields"`
	Error     string              `json:"error,omitempty"`
	Notice    string              `json:"notice,omitempty"`
	DraftID   string              `json:"draftId,omitempty"`
}

func (h *Handler) wizardView(c *gin.Context, w *wizard.Wizard) WizardView {
	return WizardView{
		Layout:    h.layout(c, "Add doctor"),
		Step:      int(w.Step),
		Steps:     wizard.StepCount,
		StepTitle: w.Title(),
		Final:     w.Final(),
		Fields:    w.Fields(),
	}
}

// loadWizard returns the session's in-progress wizard or a fresh one.
func (h *Handler) loadWizard(c *gin.Context) (*wizard.Wizard, error) {
	w := wizard.New()
	_, err := h.Drafts.Get(c.Request.Context(), store.WizardKey(session.FromContext(c).ID), w)
	if errors.Is(err, store.ErrNotFound) {
		return wizard.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (h *Handler) saveWizard(c *gin.Context, w *wizard.Wizard) error {
	return h.Drafts.Put(c.Request.Context(), store.WizardKey(session.FromContext(c).ID), w)
}

// wizardInput reads the step's values from a JSON object or a submitted form.
func wizardInput(c *gin.Context) (map[string]string, error) {
	if c.ContentType() == binding.MIMEJSON {
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, err
		}
		input := make(map[string]string, len(raw))
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				input[k] = val
			case bool:
				if val {
					input[k] = "true"
				}
			}
		}
		return input, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	input := make(map[string]string, len(c.Request.PostForm))
	for k := range c.Request.PostForm {
		input[k] = c.Request.PostForm.Get(k)
	}
	return input, nil
}

// --- SHOW WIZARD ---
func (h *Handler) ShowWizard(c *gin.Context) {
	w, err := h.loadWizard(c)
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to load wizard state")
		h.renderError(c, http.StatusInternalServerError, "Failed to load the form.", "/doctors")
		return
	}
	h.render(c, http.StatusOK, "wizard.html", h.wizardView(c, w))
}

// --- WIZARD NEXT ---
// Next on the last step is the single commit: the doctor is kept as a draft
// and the wizard starts over.
func (h *Handler) WizardNext(c *gin.Context) {
	input, err := wizardInput(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request body", "/doctors/new")
		return
	}
	w, err := h.loadWizard(c)
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to load wizard state")
		h.renderError(c, http.StatusInternalServerError, "Failed to load the form.", "/doctors")
		return
	}

	doc, err := w.Next(input)
	if err != nil {
		if saveErr := h.saveWizard(c, w); saveErr != nil {
			h.logger(c).Error().Err(saveErr).Msg("failed to save wizard state")
		}
		view := h.wizardView(c, w)
		view.Error = err.Error()
		code := http.StatusInternalServerError
		if errors.Is(err, wizard.ErrMissingFields) {
			code = http.StatusUnprocessableEntity
		}
		h.render(c, code, "wizard.html", view)
		return
	}

	var draftID string
	if doc != nil {
		draftID = uuid.NewString()
		doc.ID = draftID
		if err := h.Drafts.Put(c.Request.Context(), store.DoctorKey(draftID), doc); err != nil {
			h.logger(c).Error().Err(err).Msg("failed to save doctor draft")
			h.renderError(c, http.StatusInternalServerError, "Failed to save the doctor.", "/doctors/new")
			return
		}
		h.logger(c).Info().Str("draft_id", draftID).Msg("doctor draft saved")
	}
	if err := h.saveWizard(c, w); err != nil {
		h.logger(c).Error().Err(err).Msg("failed to save wizard state")
		h.renderError(c, http.StatusInternalServerError, "Failed to save the form.", "/doctors/new")
		return
	}

	if middleware.WantsHTML(c) {
		if draftID != "" {
			c.Redirect(http.StatusSeeOther, "/drafts/doctors/"+draftID)
			return
		}
		c.Redirect(http.StatusSeeOther, "/doctors/new")
		return
	}
	view := h.wizardView(c, w)
	code := http.StatusOK
	if draftID != "" {
		view.DraftID = draftID
		view.Notice = "Doctor saved as draft."
		code = http.StatusCreated
	}
	h.render(c, code, "wizard.html", view)
}

// --- WIZARD BACK ---
// Back keeps what was typed on the current step without checking it.
func (h *Handler) WizardBack(c *gin.Context) {
	input, err := wizardInput(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request body", "/doctors/new")
		return
	}
	h.wizardTransition(c, func(w *wizard.Wizard) { w.Back(input) })
}

// --- WIZARD CANCEL ---
func (h *Handler) WizardCancel(c *gin.Context) {
	h.wizardTransition(c, (*wizard.Wizard).Reset)
}

func (h *Handler) wizardTransition(c *gin.Context, move func(*wizard.Wizard)) {
	w, err := h.loadWizard(c)
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to load wizard state")
		h.renderError(c, http.StatusInternalServerError, "Failed to load the form.", "/doctors")
		return
	}
	move(w)
	if err := h.saveWizard(c, w); err != nil {
		h.logger(c).Error().Err(err).Msg("failed to save wizard state")
		h.renderError(c, http.StatusInternalServerError, "Failed to save the form.", "/doctors")
		return
	}
	if middleware.WantsHTML(c) {
		target := "/doctors/new"
		if strings.HasSuffix(c.Request.URL.Path, "/cancel") {
			target = "/doctors"
		}
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	h.render(c, http.StatusOK, "wizard.html", h.wizardView(c, w))
}

type DraftView struct {
	Layout  `json:"-"`
	DraftID string      `json:"draftId"`
	SavedAt time.Time   `json:"savedAt"`
	Doctor  models.User `json:"doctor"`
	Address string      `json:"address"`
}

// --- SHOW DOCTOR DRAFT ---
func (h *Handler) ShowDraft(c *gin.Context) {
	id := c.Param("id")
	var doc models.User
	savedAt, err := h.Drafts.Get(c.Request.Context(), store.DoctorKey(id), &doc)
	if errors.Is(err, store.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "Draft not found.", "/doctors")
		return
	}
	if err != nil {
		h.logger(c).Error().Err(err).Str("draft_id", id).Msg("failed to load doctor draft")
		h.renderError(c, http.StatusInternalServerError, "Failed to load the draft.", "/doctors")
		return
	}
	h.render(c, http.StatusOK, "draft.html", DraftView{
		Layout:  h.layout(c, "Doctor draft"),
		DraftID: id,
		SavedAt: savedAt,
		Doctor:  doc,
		Address: doc.Address.String(),
	})
}
