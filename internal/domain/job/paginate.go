package job

// Page is one slice of a list with its bounds
type Page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// Paginate returns list[offset:offset+limit]. limit and offset are trusted
// to be validated by the caller.
func Paginate[T any](list []T, limit, offset int) Page[T] {
	total := len(list)

	start := min(max(offset, 0), total)
	end := start
	if limit > 0 {
		end = min(start+limit, total)
	}

	data := make([]T, end-start)
	copy(data, list[start:end])

	return Page[T]{
		Data:    data,
		Total:   total,
		HasMore: offset+limit < total,
	}
}
