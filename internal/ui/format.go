package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "Jan 2, 2006"
	DateTimeLayout = "Jan 2, 2006 3:04 PM"
	// InputLayout matches <input type="datetime-local">.
	InputLayout = "2006-01-02T15:04"
)

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateTimeLayout)
}

func FormatMoney(amount float64, currency string) string {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, cur)
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Or returns the first non-empty value, or "-".
func Or(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "-"
}
