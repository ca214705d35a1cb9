package config

// FormatCode formats a diagnostic code. Falls back to the id if name is
// empty.
func FormatCode(format CodeFormat, id, name string) string {
	if name == "" {
		return id
	}

	switch format {
	case CodeFormatName:
		return name
	case CodeFormatCombined:
		return id + "/" + name
	default:
		return id
	}
}
