package store

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// clampPage normalizes limit and offset for list queries.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// trimPage drops the look-ahead row fetched to detect another page.
func trimPage[T any](items []T, limit int) ([]T, bool) {
	if len(items) > limit {
		return items[:limit], true
	}

	return items, false
}
