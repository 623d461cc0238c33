package validation

// Errors maps a request field name to its ordered list of messages.
// The zero value is not usable; create with NewErrors.
type Errors map[string][]string

// NewErrors returns an empty error map.
func NewErrors() Errors {
	return make(Errors)
}

// Add appends a message to a field, preserving insertion order.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any field failed.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// First returns the first message recorded for a field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
