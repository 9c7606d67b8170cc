package export

import "strings"

var invalidName = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// OutputName returns the file name for an export of the given format.
func OutputName(title, format string) string {
	name := strings.TrimSpace(invalidName.Replace(title))
	if name == "" {
		name = "novel"
	}

	return name + "." + format
}
