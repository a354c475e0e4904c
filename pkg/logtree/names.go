package logtree

import "strings"

const (
	// Delimiter separates segments of a logical logger name.
	Delimiter = "::"

	// DefaultPrefix is the backend name of the root logger.
	DefaultPrefix = "logtree"
)

// Translate returns the backend name for a logical name under prefix.
// Every Delimiter becomes a dot; the empty name maps to prefix alone.
func Translate(prefix, name string) string {
	if name == "" {
		return prefix
	}
	return prefix + "." + strings.ReplaceAll(name, Delimiter, ".")
}

// Parent drops the last segment of name.
// It returns false for the root, which has no parent.
func Parent(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if i := strings.LastIndex(name, Delimiter); i >= 0 {
		return name[:i], true
	}
	return "", true
}
