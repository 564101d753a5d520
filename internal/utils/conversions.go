package utils

// ToStrings converts a slice of string-backed values to plain strings.
func ToStrings[T ~string](slice []T) []string {
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		stringSlice = append(stringSlice, string(v))
	}
	return stringSlice
}

// ToAnySlice widens a typed slice for APIs that take []any.
func ToAnySlice[T any](slice []T) []any {
	anySlice := make([]any, 0, len(slice))
	for _, v := range slice {
		anySlice = append(anySlice, v)
	}
	return anySlice
}
