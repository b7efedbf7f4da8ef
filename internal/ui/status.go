package ui

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/harentsoaR/medics-admin/internal/models"
)

// Style is the badge look for a status code.
type Style struct {
	Background string `json:"backgroundColor"`
	Color      string `json:"color"`
	Border     string `json:"border"`
}

func (s Style) CSS() template.CSS {
	return template.CSS(fmt.Sprintf("background-color:%s;color:%s;border:%s", s.Background, s.Color, s.Border))
}

func tint(r, g, b int, hex string) Style {
	return Style{
		Background: fmt.Sprintf("rgba(%d, %d, %d, 0.1)", r, g, b),
		Color:      hex,
		Border:     fmt.Sprintf("1px solid rgba(%d, %d, %d, 0.2)", r, g, b),
	}
}

// NeutralStyle is used for any code missing from the palettes.
var NeutralStyle = tint(108, 117, 125, "#6c757d")

var appointmentPalette = map[string]Style{
	models.StatusRequested:  tint(13, 202, 240, "#0dcaf0"),
	models.StatusPending:    tint(255, 193, 7, "#ffc107"),
	models.StatusConfirmed:  tint(25, 135, 84, "#198754"),
	models.StatusInProgress: tint(13, 110, 253, "#0d6efd"),
	models.StatusCompleted:  tint(32, 201, 151, "#20c997"),
	models.StatusCancelled:  tint(220, 53, 69, "#dc3545"),
	models.StatusExpired:    tint(52, 58, 64, "#343a40"),
}

var paymentPalette = map[string]Style{
	models.PaymentUnpaid:   tint(253, 126, 20, "#fd7e14"),
	models.PaymentPending:  tint(255, 193, 7, "#ffc107"),
	models.PaymentPaid:     tint(25, 135, 84, "#198754"),
	models.PaymentFailed:   tint(220, 53, 69, "#dc3545"),
	models.PaymentRefunded: tint(13, 202, 240, "#0dcaf0"),
}

func AppointmentStatusStyle(code string) Style {
	return lookup(appointmentPalette, code)
}

func PaymentStatusStyle(code string) Style {
	return lookup(paymentPalette, code)
}

func lookup(palette map[string]Style, code string) Style {
	if s, ok := palette[normalizeCode(code)]; ok {
		return s
	}
	return NeutralStyle
}

// StatusLabel translates a code through reference data, falling back to a
// humanized code ("in-progress" -> "In Progress").
func StatusLabel(refs []models.Reference, code string) string {
	norm := normalizeCode(code)
	for _, r := range refs {
		if normalizeCode(r.Code) == norm && r.Name != "" {
			return r.Name
		}
	}
	return Humanize(code)
}

func Humanize(code string) string {
	words := strings.FieldsFunc(strings.TrimSpace(code), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
	}
	return strings.Join(words, " ")
}

func normalizeCode(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	return strings.ReplaceAll(strings.ReplaceAll(c, "_", "-"), " ", "-")
}
