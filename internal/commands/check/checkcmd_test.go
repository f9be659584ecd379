package check

import (
	"strings"
	"testing"

	"github.com/indaco/bv/internal/testutils"
	"github.com/urfave/cli/v3"
)

const healthyStore = `modules:
  - name: app
    files:
      - path: VERSION
        version:
          Semantic: 1.2.3
      - path: package.json
        format: json
        field: version
        version:
          Semantic: 1.2.3
`

func TestCLI_CheckCmd(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		files   map[string]string
		args    []string
		wantErr string
		wantOut []string
	}{
		{
			name:  "healthy",
			store: healthyStore,
			files: map[string]string{
				"VERSION":      "1.2.3\n",
				"package.json": `{"version": "1.2.3"}`,
			},
			wantOut: []string{"✓ Files: app: VERSION", "0 error(s), 0 warning(s)"},
		},
		{
			name:  "drifted manifest",
			store: healthyStore,
			files: map[string]string{
				"VERSION":      "1.2.3\n",
				"package.json": `{"version": "1.2.4"}`,
			},
			wantErr: "1 check(s) failed",
			wantOut: []string{"✗ Versions: app: package.json has version 1.2.4, expected 1.2.3"},
		},
		{
			name:    "missing file",
			store:   healthyStore,
			files:   map[string]string{"VERSION": "1.2.3\n"},
			wantErr: "1 check(s) failed",
			wantOut: []string{"✗ Files: app: package.json"},
		},
		{
			name:    "missing config",
			wantOut: []string{"not found", "no modules configured"},
		},
		{
			name:    "missing config with strict",
			args:    []string{"--strict"},
			wantErr: "warning(s) with --strict",
		},
		{
			name:    "malformed config",
			store:   "modules: [\n",
			wantErr: "is malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.store != "" {
				testutils.WriteFile(t, dir, "bv.yml", tt.store)
			}
			for name, content := range tt.files {
				testutils.WriteFile(t, dir, name, content)
			}

			env, out := testutils.NewEnv(t, dir)
			app := testutils.BuildCLIForTests([]*cli.Command{Run(env)})

			err := testutils.RunCLI(t, app, append([]string{"bv", "check"}, tt.args...)...)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}

			for _, want := range tt.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}
