package homework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResponseReturnsFirstRecord(t *testing.T) {
	response := map[string]any{
		"homeworks": []any{
			map[string]any{"homework_name": "hw2", "status": StatusReviewing},
			map[string]any{"homework_name": "hw1", "status": StatusApproved},
		},
		"current_date": float64(1700000000),
	}

	record, status, err := CheckResponse(response)

	require.NoError(t, err)
	assert.Equal(t, StatusReviewing, status)
	// Only the most recent entry counts, later ones are ignored.
	assert.Equal(t, "hw2", record["homework_name"])
}

func TestCheckResponseShapeViolations(t *testing.T) {
	tests := []struct {
		name     string
		response any
		wantErr  error
	}{
		{
			name:     "nil payload",
			response: nil,
			wantErr:  ErrHomeworksKeyMissing,
		},
		{
			name:     "not a mapping",
			response: []any{"homeworks"},
			wantErr:  ErrHomeworksKeyMissing,
		},
		{
			name:     "collection key absent",
			response: map[string]any{"lessons": []any{}},
			wantErr:  ErrHomeworksKeyMissing,
		},
		{
			name:     "collection is not a list",
			response: map[string]any{"homeworks": "hw1"},
			wantErr:  ErrHomeworksNotList,
		},
		{
			name:     "collection is null",
			response: map[string]any{"homeworks": nil},
			wantErr:  ErrHomeworksNotList,
		},
		{
			name:     "record is not an object",
			response: map[string]any{"homeworks": []any{"hw1"}},
			wantErr:  ErrRecordMalformed,
		},
		{
			name:     "undocumented status",
			response: map[string]any{"homeworks": []any{map[string]any{"homework_name": "hw1", "status": "archived"}}},
			wantErr:  ErrUndocumentedStatus,
		},
		{
			name:     "status absent",
			response: map[string]any{"homeworks": []any{map[string]any{"homework_name": "hw1"}}},
			wantErr:  ErrUndocumentedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CheckResponse(tt.response)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckResponseEmptyCollection(t *testing.T) {
	_, _, err := CheckResponse(map[string]any{"homeworks": []any{}})

	assert.ErrorIs(t, err, ErrNoUpdates)
}
