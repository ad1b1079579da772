package domain

// Severity tags a user-visible notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a transient message shown to the shopper.
type Notification struct {
	Severity Severity `json:"type"`
	Key      string   `json:"key"`
	Message  string   `json:"message"`
}
