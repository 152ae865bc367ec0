package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectTitle(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string // "" means the directory name
	}{
		{"no manifest", nil, ""},
		{"go module path", map[string]string{"go.mod": "module github.com/acme/ops-console\n\ngo 1.24\n"}, "ops-console"},
		{"quoted module path", map[string]string{"go.mod": "// tools\nmodule \"example.com/shell\"\n"}, "shell"},
		{"package.json", map[string]string{"package.json": `{"name": "web-console"}`}, "web-console"},
		{"pep 621", map[string]string{"pyproject.toml": "[project]\nname = \"pyconsole\"\n"}, "pyconsole"},
		{"poetry", map[string]string{"pyproject.toml": "[tool.poetry]\nname = \"poetic\"\n"}, "poetic"},
		{"cargo", map[string]string{"Cargo.toml": "[package]\nname = \"rusty\"\n"}, "rusty"},
		{
			"go.mod first",
			map[string]string{"go.mod": "module a/gomod\n", "package.json": `{"name": "node"}`},
			"gomod",
		},
		{
			"broken manifest skipped",
			map[string]string{"package.json": "{not json", "Cargo.toml": "[package]\nname = \"after\"\n"},
			"after",
		},
		{
			"empty name skipped",
			map[string]string{"pyproject.toml": "[project]\nname = \"\"\n", "Cargo.toml": "[package]\nname = \"crate\"\n"},
			"crate",
		},
		{"name of wrong type", map[string]string{"Cargo.toml": "[package]\nname = 3\n"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "workdir")
			if err := os.Mkdir(dir, 0755); err != nil {
				t.Fatal(err)
			}
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			want := tt.want
			if want == "" {
				want = "workdir"
			}
			if got := ProjectTitle(dir); got != want {
				t.Errorf("ProjectTitle() = %q, want %q", got, want)
			}
		})
	}
}

func TestLoad_TitleFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[console]\nprompt_symbol = \"$ \"\n")
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/detected\n")

	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Console.Title != "detected" {
		t.Errorf("Console.Title = %q, want detected", cfg.Console.Title)
	}

	writeFile(t, filepath.Join(dir, FileName), "[console]\ntitle = \"explicit\"\n")
	cfg, err = Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Console.Title != "explicit" {
		t.Errorf("Console.Title = %q, want explicit", cfg.Console.Title)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
