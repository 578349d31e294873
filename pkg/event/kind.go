package event

// Kind returns the short name of ev's variant, used in reports and
// metric labels.
func Kind(ev Event) string {
	switch ev.(type) {
	case Distance:
		return "distance"
	case Geolocation:
		return "geolocation"
	case UserInput:
		return "user_input"
	case TextMessage:
		return "text_message"
	case Truncated:
		return "truncated"
	default:
		return "unknown"
	}
}
