package csvsource

import (
	"strconv"
	"strings"
	"time"

	"gridview/internal/domain"
)

// dateLayouts are tried in order when classifying a cell as a date
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Infer classifies one raw cell into a typed field value. Whitespace-only
// cells are empty; numbers and dates keep their raw text for display.
func Infer(raw string) domain.FieldValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.EmptyValue()
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return domain.FieldValue{Kind: domain.KindNumber, Raw: raw, Num: n}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return domain.FieldValue{Kind: domain.KindDate, Raw: raw, Date: t}
		}
	}

	return domain.FieldValue{Kind: domain.KindText, Raw: raw}
}
