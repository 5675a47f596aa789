package storage

// NotFoundError is returned when no memory record has been persisted yet.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	if e.Name == "" {
		return "memory record not found"
	}

	return "memory record not found: " + e.Name
}
