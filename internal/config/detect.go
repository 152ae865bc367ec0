package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifest is a project file that may name the project, with the reader that
// pulls the name out of its contents. A reader returns "" when it finds none.
type manifest struct {
	file string
	name func(data []byte) string
}

// titleManifests are consulted in order; the first non-empty name wins.
var titleManifests = []manifest{
	{"go.mod", goModuleName},
	{"package.json", jsonName},
	{"pyproject.toml", tomlName("project.name", "tool.poetry.name")},
	{"Cargo.toml", tomlName("package.name")},
}

// ProjectTitle returns the default header title for a console started in
// dir: the project name from the first manifest that has one, else the
// directory's base name.
func ProjectTitle(dir string) string {
	for _, m := range titleManifests {
		data, err := os.ReadFile(filepath.Join(dir, m.file))
		if err != nil {
			continue
		}
		if name := m.name(data); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}

// goModuleName returns the last element of the module path.
func goModuleName(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if mod, ok := strings.CutPrefix(line, "module "); ok {
			return path.Base(strings.Trim(strings.TrimSpace(mod), `"`))
		}
	}
	return ""
}

func jsonName(data []byte) string {
	var doc struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(data, &doc) != nil {
		return ""
	}
	return doc.Name
}

// tomlName returns a reader trying each dotted key in turn.
func tomlName(keys ...string) func([]byte) string {
	return func(data []byte) string {
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return ""
		}
		for _, key := range keys {
			if s := lookupString(doc, strings.Split(key, ".")); s != "" {
				return s
			}
		}
		return ""
	}
}

func lookupString(doc map[string]any, parts []string) string {
	for i, p := range parts {
		v, ok := doc[p]
		if !ok {
			return ""
		}
		if i == len(parts)-1 {
			s, _ := v.(string)
			return s
		}
		if doc, ok = v.(map[string]any); !ok {
			return ""
		}
	}
	return ""
}
