package helpers

// NilIfEmpty converts a form value to a nullable column value. Empty strings
// become NULL.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences a nullable column value, mapping NULL to "".
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
