package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// ValidateInputs checks that every configured input file exists before
// any work starts. All missing paths are reported in one error so the
// user fixes the data directory in a single round trip.
func ValidateInputs(paths ...string) error {
	var missing []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing input files: %s", strings.Join(missing, ", "))
	}
	return nil
}
