package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs the six concrete end-to-end scenarios against
// testdata/fixtures/*.lag and snapshots their stdout, following the shape
// of the teacher's own go-snaps fixture harness.
func TestFixtures(t *testing.T) {
	fixtures := []string{
		"arithmetic",
		"function_call",
		"struct_method",
		"list_reverse_join",
		"string_upper_append",
		"for_value_index",
	}

	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", "fixtures", name+".lag")
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read fixture %s: %v", path, err)
			}

			var buf bytes.Buffer
			i := New()
			i.Output = &buf

			result := i.Run(string(source), path)
			if IsError(result) {
				t.Fatalf("fixture %s produced a runtime error: %s", name, result.String())
			}

			snaps.MatchSnapshot(t, name+"_stdout", buf.String())
		})
	}
}
