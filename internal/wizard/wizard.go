// Package wizard models the three-step doctor creation form as a small state
// machine. Values accumulate across steps and are committed once, from the
// last step.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type Step int

const (
	Step1 Step = iota + 1 // identity and address
	Step2                 // emergency contact
	Step3                 // regulatory details
)

const StepCount = int(Step3)

var ErrMissingFields = errors.New("required fields missing")

// MissingFieldsError lists the labels of the empty required fields.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("please fill in: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FieldValue is a field with whatever the user has entered so far.
type FieldValue struct {
	Field
	Value string `json:"value"`
}

var steps = map[Step]struct {
	title  string
	fields []Field
}{
	Step1: {"Personal details", []Field{
		{"firstName", "First name", "text", true},
		{"lastName", "Last name", "text", true},
		{"email", "Email", "email", true},
		{"phone", "Phone", "tel", true},
		{"streetAddress1", "Street address", "text", false},
		{"streetAddress2", "Street address line 2", "text", false},
		{"city", "City", "text", true},
		{"state", "State", "text", false},
		{"postalCode", "Postal code", "text", false},
		{"country", "Country", "text", true},
	}},
	Step2: {"Emergency contact", []Field{
		{"emergencyFullName", "Full name", "text", true},
		{"emergencyRelation", "Relation", "text", true},
		{"emergencyPhone", "Phone", "tel", true},
		{"emergencyEmail", "Email", "email", false},
	}},
	Step3: {"Regulatory details", []Field{
		{"authorityName", "Regulatory authority", "text", true},
		{"registrationNumber", "Registration number", "text", true},
		{"onSpecialistRegister", "On specialist register", "checkbox", false},
		{"allowStatusVerification", "Allow status verification", "checkbox", false},
	}},
}

// Wizard is the persisted state of one in-progress doctor creation.
type Wizard struct {
	Step   Step              `json:"step" bson:"step"`
	Values map[string]string `json:"values" bson:"values"`
}

func New() *Wizard {
	return &Wizard{Step: Step1, Values: map[string]string{}}
}

func (w *Wizard) Title() string { return steps[w.Step].title }

func (w *Wizard) Final() bool { return w.Step == Step3 }

// Fields returns the current step's fields filled with the stored values.
func (w *Wizard) Fields() []FieldValue {
	def := steps[w.Step].fields
	out := make([]FieldValue, len(def))
	for i, f := range def {
		out[i] = FieldValue{Field: f, Value: w.Values[f.Name]}
	}
	return out
}

// Next stores the current step's input and advances. From Step3 it returns
// the assembled doctor and resets the wizard; on any other step the returned
// user is nil. Missing required fields keep the wizard where it is.
func (w *Wizard) Next(input map[string]string) (*models.User, error) {
	w.normalize()
	if missing := w.store(input); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if w.Step < Step3 {
		w.Step++
		return nil, nil
	}
	doc := w.Doctor()
	w.Reset()
	return &doc, nil
}

// Back keeps whatever was submitted for the current step, complete or not,
// and moves one step back. An empty input leaves the stored values alone.
func (w *Wizard) Back(input map[string]string) {
	w.normalize()
	if len(input) > 0 {
		w.store(input)
	}
	if w.Step > Step1 {
		w.Step--
	}
}

func (w *Wizard) Reset() {
	w.Step = Step1
	w.Values = map[string]string{}
}

// Doctor assembles the accumulated values into a doctor record.
func (w *Wizard) Doctor() models.User {
	v := w.Values
	return models.User{
		FirstName: v["firstName"],
		LastName:  v["lastName"],
		Email:     v["email"],
		Phone:     v["phone"],
		Role:      models.RoleDoctor,
		Country:   v["country"],
		City:      v["city"],
		Address: models.StructuredAddressOf(models.StructuredAddress{
			StreetAddress1: v["streetAddress1"],
			StreetAddress2: v["streetAddress2"],
			City:           v["city"],
			State:          v["state"],
			PostalCode:     v["postalCode"],
			Country:        v["country"],
		}),
		DocProfile: &models.DocProfile{
			EmergencyContact: models.EmergencyContact{
				FullName: v["emergencyFullName"],
				Relation: v["emergencyRelation"],
				Phone:    v["emergencyPhone"],
				Email:    v["emergencyEmail"],
			},
			RegulatoryDetails: models.RegulatoryDetails{
				AuthorityName:           v["authorityName"],
				RegistrationNumber:      v["registrationNumber"],
				OnSpecialistRegister:    v["onSpecialistRegister"] == "true",
				AllowStatusVerification: v["allowStatusVerification"] == "true",
			},
		},
	}
}

// store writes the current step's fields from input and returns the labels of
// required fields left empty.
func (w *Wizard) store(input map[string]string) []string {
	var missing []string
	for _, f := range steps[w.Step].fields {
		v := strings.TrimSpace(input[f.Name])
		if f.Type == "checkbox" {
			v = checkbox(v)
		}
		w.Values[f.Name] = v
		if f.Required && v == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// normalize repairs state decoded from storage.
func (w *Wizard) normalize() {
	if w.Step < Step1 || w.Step > Step3 {
		w.Step = Step1
	}
	if w.Values == nil {
		w.Values = map[string]string{}
	}
}

func checkbox(v string) string {
	switch strings.ToLower(v) {
	case "true", "on", "1", "yes":
		return "true"
	}
	return ""
}
