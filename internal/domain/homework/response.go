// internal/domain/homework/response.go
package homework

import (
	"errors"
	"fmt"
)

var (
	ErrHomeworksKeyMissing = errors.New(`no "homeworks" collection in the API response`)
	ErrHomeworksNotList    = errors.New(`value under "homeworks" is not a list`)
	ErrRecordMalformed     = errors.New("homework record is not an object")

	// ErrNoUpdates reports an empty collection. It is a benign condition:
	// nothing changed within the requested window.
	ErrNoUpdates = errors.New("no homework updates in the requested window")
)

// CheckResponse verifies that a raw API payload matches the documented shape
// and extracts the most recent homework. Only the first element of the
// collection is inspected, even when more are present. It returns the raw
// record for ParseStatus together with the record's status.
func CheckResponse(response any) (map[string]any, string, error) {
	payload, ok := response.(map[string]any)
	if !ok {
		return nil, "", ErrHomeworksKeyMissing
	}

	raw, ok := payload["homeworks"]
	if !ok {
		return nil, "", ErrHomeworksKeyMissing
	}
	homeworks, ok := raw.([]any)
	if !ok {
		return nil, "", ErrHomeworksNotList
	}
	if len(homeworks) == 0 {
		return nil, "", ErrNoUpdates
	}

	record, ok := homeworks[0].(map[string]any)
	if !ok {
		return nil, "", ErrRecordMalformed
	}

	status, _ := record["status"].(string)
	if _, documented := Verdicts[status]; !documented {
		return nil, "", fmt.Errorf("%w: %q", ErrUndocumentedStatus, status)
	}

	return record, status, nil
}
