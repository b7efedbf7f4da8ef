package models

import "sort"

// Reference is one entry of a backend enumeration (status, visit type, ...).
type Reference struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ReferenceBundle struct {
	VisitTypes          map[string]Reference `json:"VISIT_TYPES"`
	AppointmentStatuses map[string]Reference `json:"APPOINTMENT_STATUSES"`
	ServiceTypes        map[string]Reference `json:"SERVICE_TYPES"`
	AppointmentModes    map[string]Reference `json:"APPOINTMENT_MODES"`
	PaymentStatuses     map[string]Reference `json:"PAYMENT_STATUSES"`
}

// DefaultAppointmentStatuses is used whenever the reference endpoint fails.
var DefaultAppointmentStatuses = []Reference{
	{ID: 1, Code: StatusPending, Name: "Pending"},
	{ID: 2, Code: StatusConfirmed, Name: "Confirmed"},
	{ID: 3, Code: StatusInProgress, Name: "In Progress"},
	{ID: 4, Code: StatusCancelled, Name: "Cancelled"},
	{ID: 5, Code: StatusCompleted, Name: "Completed"},
	{ID: 6, Code: StatusExpired, Name: "Expired"},
}

var DefaultPaymentStatuses = []Reference{
	{ID: 1, Code: PaymentUnpaid, Name: "Unpaid"},
	{ID: 2, Code: PaymentPending, Name: "Pending"},
	{ID: 3, Code: PaymentPaid, Name: "Paid"},
	{ID: 4, Code: PaymentFailed, Name: "Failed"},
	{ID: 5, Code: PaymentRefunded, Name: "Refunded"},
}

// FallbackReferences holds the hardcoded enumerations.
func FallbackReferences() ReferenceBundle {
	return ReferenceBundle{
		AppointmentStatuses: keyed(DefaultAppointmentStatuses),
		PaymentStatuses:     keyed(DefaultPaymentStatuses),
	}
}

func (b ReferenceBundle) AppointmentStatusList() []Reference { return ordered(b.AppointmentStatuses) }
func (b ReferenceBundle) PaymentStatusList() []Reference     { return ordered(b.PaymentStatuses) }
func (b ReferenceBundle) VisitTypeList() []Reference         { return ordered(b.VisitTypes) }
func (b ReferenceBundle) ServiceTypeList() []Reference       { return ordered(b.ServiceTypes) }
func (b ReferenceBundle) AppointmentModeList() []Reference   { return ordered(b.AppointmentModes) }

func keyed(refs []Reference) map[string]Reference {
	m := make(map[string]Reference, len(refs))
	for _, r := range refs {
		m[r.Code] = r
	}
	return m
}

func ordered(m map[string]Reference) []Reference {
	out := make([]Reference, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Code < out[j].Code
	})
	return out
}
