// File: internal/notify/message.go
package notify

// Status is the severity of a notification.
type Status string

const (
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Message is a single user-facing or logged notification. The channel flags
// are independent: a message may target several channels at once, or only the
// diagnostic log.
type Message struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Log         bool   `json:"log,omitempty"`
	Toast       bool   `json:"toast,omitempty"`
	Modal       bool   `json:"modal,omitempty"`
}
