package events

import "reflect"

// Helper function to extract table ID from events
func ExtractTableID(event Event) string {
	return stringField(event, "TableID")
}

// ExtractPlayerID returns the PlayerID field of an event, if it has one.
func ExtractPlayerID(event Event) string {
	return stringField(event, "PlayerID")
}

// ExtractHandNumber returns the HandNumber field of an event, or 0.
func ExtractHandNumber(event Event) int {
	val := structValue(event)
	if !val.IsValid() {
		return 0
	}
	field := val.FieldByName("HandNumber")
	if field.IsValid() && field.Kind() == reflect.Int {
		return int(field.Int())
	}
	return 0
}

func stringField(event Event, name string) string {
	val := structValue(event)
	if !val.IsValid() {
		return ""
	}

	field := val.FieldByName(name)
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}

func structValue(event Event) reflect.Value {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return reflect.Value{}
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return val
}
