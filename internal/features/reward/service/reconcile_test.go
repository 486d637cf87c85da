package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_Consistent(t *testing.T) {
	rec := Reconcile(
		[]string{"@a", "@b", "@c"},
		[]string{"@a", "@b"},
		[]string{"@c"},
		[]string{"@a"},
	)

	assert.Empty(t, rec.Warnings)
	assert.Equal(t, 1, rec.FailedFoundCount)
}

func TestReconcile_HandleMatchingIgnoresCaseAndAt(t *testing.T) {
	rec := Reconcile([]string{"@Alice"}, []string{"alice"}, nil, []string{"ALICE"})

	assert.Empty(t, rec.Warnings)
	assert.Equal(t, []string{}, rec.NotFound)
}

func TestReconcile_Violations(t *testing.T) {
	cases := []struct {
		name                     string
		found, notFound, success []string
		warning                  string
	}{
		{"success outside found", []string{"@a"}, []string{"@b"}, []string{"@a", "@b"}, "success handles not reported as found: @b"},
		{"found and not found", []string{"@a", "@b"}, []string{"@b"}, nil, "handles reported as both found and not found: @b"},
		{"missing", []string{"@a"}, nil, nil, "requested handles missing from the response: @b"},
		{"unrequested", []string{"@a", "@b", "@z"}, nil, nil, "response reports handles that were never requested: @z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Reconcile([]string{"@a", "@b"}, tc.found, tc.notFound, tc.success)
			assert.Contains(t, rec.Warnings, tc.warning)
		})
	}
}

func TestReconcile_NegativeCountIsNotClamped(t *testing.T) {
	rec := Reconcile([]string{"@a", "@b"}, []string{"@a"}, []string{"@b"}, []string{"@a", "@b"})

	assert.Equal(t, -1, rec.FailedFoundCount)
	assert.Equal(t, []string{"@a", "@b"}, rec.Success)
	assert.NotEmpty(t, rec.Warnings)
}

// Any partition of the requested set with success drawn from found must reconcile cleanly.
func TestReconcile_ValidPartitionsNeverWarn(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(12)
		var requested, found, notFound, success []string
		for j := 0; j < n; j++ {
			h := fmt.Sprintf("@user%d", j)
			requested = append(requested, h)
			if rng.Intn(2) == 0 {
				notFound = append(notFound, h)
				continue
			}
			found = append(found, h)
			if rng.Intn(2) == 0 {
				success = append(success, h)
			}
		}

		rec := Reconcile(requested, found, notFound, success)
		assert.Empty(t, rec.Warnings)
		assert.Equal(t, len(found)-len(success), rec.FailedFoundCount)
		assert.GreaterOrEqual(t, rec.FailedFoundCount, 0)
		assert.Equal(t, n, len(rec.Found)+len(rec.NotFound))
	}
}
