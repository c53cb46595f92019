package alternates

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data/*.toml
var builtinFS embed.FS

// DefaultLang is used when a language has no built-in table.
const DefaultLang = "en"

// Languages lists the languages with a built-in table.
func Languages() []string {
	entries, err := builtinFS.ReadDir("data")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".toml") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".toml"))
	}
	sort.Strings(langs)
	return langs
}

// ForLang returns the built-in table for lang, falling back to DefaultLang.
func ForLang(lang string) Table {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if t, err := builtin(lang); err == nil {
		return t
	}
	t, err := builtin(DefaultLang)
	if err != nil {
		return Table{}
	}
	return t
}

func builtin(lang string) (Table, error) {
	if lang == "" {
		return nil, fmt.Errorf("language is empty")
	}
	data, err := builtinFS.ReadFile(path.Join("data", lang+".toml"))
	if err != nil {
		return nil, err
	}
	return decode(string(data))
}

func decode(data string) (Table, error) {
	var file tableFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode alternates: %w", err)
	}
	return file.table(), nil
}
