package pashmak_test

import (
	"testing"

	"github.com/EhsanAmirahmadi/pashmak/testutils"
)

// TestScenarios runs the whole-program fixtures in testdata/scenarios.yaml.
func TestScenarios(t *testing.T) {
	for _, sc := range testutils.Load(t, "testdata/scenarios.yaml") {
		sc := sc
		t.Run(sc.Name, sc.Run)
	}
}
