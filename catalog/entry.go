// Package catalog defines the error catalog: immutable (code, message,
// description) entries and a registry keyed by the unique code.
package catalog

// Entry is one catalog record. The zero value is not a valid entry.
type Entry struct {
	code        string
	message     string
	description string
}

// NewEntry creates a catalog entry.
func NewEntry(code, message, description string) Entry {
	return Entry{
		code:        code,
		message:     message,
		description: description,
	}
}

// Code returns the stable error code, e.g. "AUTH-001".
func (e Entry) Code() string {
	return e.code
}

// Message returns the default user-facing message.
func (e Entry) Message() string {
	return e.message
}

// Description returns the default longer description.
func (e Entry) Description() string {
	return e.description
}

// IsZero reports whether e carries no code.
func (e Entry) IsZero() bool {
	return e.code == ""
}

// String returns the code.
func (e Entry) String() string {
	return e.code
}
