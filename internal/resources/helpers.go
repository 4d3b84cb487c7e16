package resources

import "strings"

// moduleID extracts the module id from a knowledge://modules/{id} URI.
func moduleID(uri string) string {
	return strings.TrimPrefix(uri, "knowledge://modules/")
}
