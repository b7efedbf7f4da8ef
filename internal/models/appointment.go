package models

import "time"

const (
	StatusRequested  = "requested"
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusExpired    = "expired"
)

const (
	PaymentUnpaid   = "unpaid"
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

type Appointment struct {
	ID              string          `json:"_id"`
	ReadableID      string          `json:"readableId,omitempty"`
	Patient         UserRef         `json:"patientId"`
	Doctor          *UserRef        `json:"doctorId,omitempty"`
	ScheduledRange  *TimeRange      `json:"scheduledRange,omitempty"`
	ScheduledAt     *time.Time      `json:"scheduledAt,omitempty"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	PaymentDetails  *PaymentDetails `json:"paymentDetails,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	ServiceType     string          `json:"serviceType"`
	VisitType       string          `json:"visitType"`
	AppointmentMode string          `json:"appointmentMode"`
	Reason          string          `json:"reason"`
	Attended        bool            `json:"attended"`
	IsForSelf       bool            `json:"isForSelf"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type PaymentDetails struct {
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	Method     string     `json:"method"`
	ReceiptURL string     `json:"receiptUrl,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// Start prefers the scheduled range and falls back to the legacy scheduledAt.
func (a Appointment) Start() (time.Time, bool) {
	if a.ScheduledRange != nil && !a.ScheduledRange.Start.IsZero() {
		return a.ScheduledRange.Start, true
	}
	if a.ScheduledAt != nil && !a.ScheduledAt.IsZero() {
		return *a.ScheduledAt, true
	}
	return time.Time{}, false
}

func (a Appointment) DisplayID() string {
	if a.ReadableID != "" {
		return a.ReadableID
	}
	return a.ID
}

func (a Appointment) DoctorName() string {
	if a.Doctor == nil {
		return ""
	}
	return a.Doctor.FullName()
}
