package app

// DomainError carries an HTTP status and a stable machine-readable
// code alongside the human message. Handlers pass it straight through
// mapError instead of translating again.
type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{Status: status, Code: code, Message: message, Details: details}
}
