package listview

import "strings"

// FilterRows narrows an already fetched page by a case-insensitive substring
// match on the given display fields. Pagination counts are not affected.
func FilterRows[T any](rows []T, search string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, f := range fields(row) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
