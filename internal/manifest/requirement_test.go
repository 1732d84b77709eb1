package manifest

import "testing"

func TestRepresentableInRegistry(t *testing.T) {
	cases := []struct {
		name string
		req  Requirement
		want bool
	}{
		{"exact", ExactRequirement{Version: "1.0.0"}, true},
		{"range", RangeRequirement{Low: "1.0.0", High: "2.0.0"}, true},
		{"branch", BranchRequirement{Name: "main"}, false},
		{"revision", RevisionRequirement{ID: "abc123"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RepresentableInRegistry(c.req); got != c.want {
				t.Fatalf("RepresentableInRegistry(%v) = %v, want %v", c.req, got, c.want)
			}
		})
	}
}
