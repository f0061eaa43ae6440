//go:build go1.18
// +build go1.18

package eye

import (
	"testing"
)

// FuzzResolve checks that arbitrary eye output never panics the resolver and
// that malformed output always degrades to "unknown" and an empty list.
func FuzzResolve(f *testing.F) {
	f.Add(SampleReport, "test", "", "sample")
	f.Add(SampleReport, "test2", "samples", "sample")
	f.Add(`{"subtree":[{"name":1}]}`, "", "", "x")
	f.Add(`{"subtree":[{"subtree":[{"subtree":[{}]}]}]}`, "", "", "")
	f.Add("socket(/tmp/eye.sock) not found", "test", "", "sample")
	f.Add("", "", "", "")

	f.Fuzz(func(t *testing.T, text, application, group, process string) {
		state := Resolve(text, application, group, process)
		apps := ListApplications(text)
		if apps == nil {
			t.Fatal("ListApplications returned nil")
		}

		if _, err := ParseReport(text); err != nil {
			if state != StateUnknown {
				t.Fatalf("Resolve on malformed text = %q, want %q", state, StateUnknown)
			}
			if len(apps) != 0 {
				t.Fatalf("ListApplications on malformed text = %v, want empty", apps)
			}
		}

		if again := Resolve(text, application, group, process); again != state {
			t.Fatalf("Resolve not deterministic: %q then %q", state, again)
		}
	})
}
