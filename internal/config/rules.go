package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/newfile/internal/replace"
)

// LoadRules reads a replacement rule list from a TOML file. Rules may be
// given as [[rules]] or, to reuse a settings file, [[replacements]].
func LoadRules(path string) ([]replace.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var doc struct {
		Rules        []ruleEntry `toml:"rules"`
		Replacements []ruleEntry `toml:"replacements"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", path, err)
	}

	out := rules(append(doc.Rules, doc.Replacements...))
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("rules %s: rule %d: %w", path, i+1, err)
		}
	}
	return out, nil
}
