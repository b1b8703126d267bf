package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Entity kinds used as the prefix of a change type.
const (
	EntityEvent   = "event"
	EntityBooking = "booking"
)

// EventHistory is one immutable audit entry describing a single field
// change on an event or booking.
type EventHistory struct {
	ID            string                 `json:"id"`
	SubjectID     string                 `json:"subject_id"`
	ActorID       string                 `json:"actor_id"`
	ChangeType    string                 `json:"change_type"`
	PreviousValue string                 `json:"previous_value"`
	NewValue      string                 `json:"new_value"`
	Description   string                 `json:"description"`
	Context       map[string]interface{} `json:"context,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// FieldChange is a field whose stringified value differs before and after
// an update.
type FieldChange struct {
	Field    string
	Previous string
	New      string
}

func ChangeType(entity, field string) string {
	return entity + "_" + field
}

func DescribeChange(entity string, change FieldChange) string {
	return fmt.Sprintf("%s %s changed from %q to %q", entity, change.Field, change.Previous, change.New)
}

// FormatValue coerces a field value to the string form stored in history.
// Nil values and nil pointers become the empty string.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case int:
		return strconv.Itoa(val)
	case *int:
		if val == nil {
			return ""
		}
		return strconv.Itoa(*val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.UTC().Format(time.RFC3339)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
