package record

import (
	"encoding/json"
	"testing"
	"time"
)

// TestValidateNew tests the caller-supplied field checks
func TestValidateNew(t *testing.T) {
	if err := ValidateNew("Buy milk", "2024-06-01"); err != nil {
		t.Errorf("ValidateNew(valid) = %v, want nil", err)
	}
	if err := ValidateNew("", "2024-06-01"); err == nil {
		t.Error("ValidateNew(empty text) = nil, want error")
	}
	if err := ValidateNew("Buy milk", ""); err == nil {
		t.Error("ValidateNew(empty date) = nil, want error")
	}
	if err := ValidateNew("Buy milk", "June 1st"); err == nil {
		t.Error("ValidateNew(bad date) = nil, want error")
	}
}

// TestTask_WireFormat tests the snake_case JSON field names clients depend on
func TestTask_WireFormat(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        1,
		Text:      "Buy milk",
		Completed: false,
		Date:      "2024-06-01",
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	for _, key := range []string{"id", "text", "completed", "date", "created_at", "updated_at"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("marshaled task missing field %q", key)
		}
	}
}
