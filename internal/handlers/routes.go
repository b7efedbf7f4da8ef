package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/middleware"
)

// Register mounts every console route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/dashboard") })

	authRoutes := r.Group("/")
	{
		authRoutes.GET("/login", h.LoginPage)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/logout", h.Logout)
	}

	consoleRoutes := r.Group("/")
	consoleRoutes.Use(middleware.RequireUser())
	{
		consoleRoutes.GET("/dashboard", h.Dashboard)

		consoleRoutes.GET("/admins/new", h.NewAdminPage)
		consoleRoutes.POST("/admins", h.CreateAdmin)

		// Appointment routes
		consoleRoutes.GET("/appointments", h.ListAppointments)
		consoleRoutes.GET("/appointments/:id", h.ShowAppointment)
		consoleRoutes.POST("/appointments/:id/schedule", h.RescheduleAppointment)
		consoleRoutes.PUT("/appointments/:id/schedule", h.RescheduleAppointment)

		// Doctor routes
		consoleRoutes.GET("/doctors", h.ListDoctors)
		consoleRoutes.GET("/doctors/new", h.ShowWizard)
		consoleRoutes.POST("/doctors/new/next", h.WizardNext)
		consoleRoutes.POST("/doctors/new/back", h.WizardBack)
		consoleRoutes.POST("/doctors/new/cancel", h.WizardCancel)
		consoleRoutes.GET("/doctors/:id", h.ShowDoctor)
		consoleRoutes.GET("/doctors/:id/reviews", h.DoctorReviews)
		consoleRoutes.POST("/doctors/:id/verification", h.SaveVerification)
		consoleRoutes.GET("/drafts/doctors/:id", h.ShowDraft)

		// Patient routes
		consoleRoutes.GET("/patients", h.ListPatients)
		consoleRoutes.GET("/patients/:id", h.ShowPatient)
	}
}
