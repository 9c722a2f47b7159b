// internal/domain/homework/status.go
package homework

import (
	"errors"
	"fmt"
)

// Review statuses documented by the Practicum API.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"

	// StatusUnknown shows up on records the reviewers have not picked up
	// yet. It is valid on the wire but never announced to the chat.
	StatusUnknown = "unknown"
)

// Verdicts maps each documented review status to the human-readable text
// delivered to the chat.
var Verdicts = map[string]string{
	StatusApproved:  "reviewed, all good",
	StatusReviewing: "taken for review",
	StatusRejected:  "reviewed, has remarks",
}

var (
	ErrNameMissing        = errors.New(`homework record has no "homework_name"`)
	ErrStatusUnknown      = errors.New(`homework status is the sentinel "unknown"`)
	ErrUndocumentedStatus = errors.New("undocumented homework status")
)

// ParseStatus builds the notification text for a single homework record.
// The record is the raw first element of the "homeworks" collection; its
// fields are verified here independently of CheckResponse so the formatter
// stays safe to call on any record.
func ParseStatus(record map[string]any) (string, error) {
	name, ok := record["homework_name"].(string)
	if !ok {
		return "", ErrNameMissing
	}

	status, _ := record["status"].(string)
	if status == StatusUnknown {
		return "", ErrStatusUnknown
	}

	verdict, ok := Verdicts[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUndocumentedStatus, status)
	}

	return fmt.Sprintf("Changed review status of %q. %s", name, verdict), nil
}
