package util

// Clamp normalizes a requested result limit into [1, max], falling back
// to def when the request carries no usable value.
func Clamp(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
