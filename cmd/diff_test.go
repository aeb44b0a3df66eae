package cmd

import "testing"

func TestResolveDiffArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantSource string
		wantTarget string
	}{
		{"no args defaults to local vs dev", nil, "local", "dev"},
		{"one arg compares against dev", []string{"staging"}, "staging", "dev"},
		{"dev as sole arg falls back to local", []string{"dev"}, "dev", "local"},
		{"two args taken as given", []string{"staging", "prod"}, "staging", "prod"},
		{"local vs local is allowed", []string{"local", "local"}, "local", "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, target := resolveDiffArgs(tt.args)
			if source != tt.wantSource || target != tt.wantTarget {
				t.Errorf("resolveDiffArgs(%v) = (%q, %q), want (%q, %q)",
					tt.args, source, target, tt.wantSource, tt.wantTarget)
			}
		})
	}
}
