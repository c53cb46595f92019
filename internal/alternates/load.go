package alternates

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type tableFile struct {
	Alternates map[string][]string `toml:"alternates"`
}

func (f tableFile) table() Table {
	t := make(Table, len(f.Alternates))
	for k, v := range f.Alternates {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		entries := make([]string, 0, len(v))
		for _, entry := range v {
			if entry == "" {
				continue
			}
			entries = append(entries, entry)
		}
		t[k] = entries
	}
	return t
}

// LoadTable reads a user alternates file. A missing file yields an empty table.
// Keys listed with an empty array are kept so Merge can remove them.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return nil, fmt.Errorf("alternates path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("failed to stat alternates: %w", err)
	}
	var file tableFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode alternates: %w", err)
	}
	return file.table(), nil
}

// Resolve returns the built-in table for lang with the user file at path
// applied on top. An empty path skips the user file.
func Resolve(lang, path string) (Table, error) {
	base := ForLang(lang)
	if path == "" {
		return base, nil
	}
	overlay, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return base.Merge(overlay), nil
}
