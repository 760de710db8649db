package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

var (
	// ErrBlankPreset indicates an empty preset value.
	ErrBlankPreset = errors.New("preset value is blank")

	// ErrDuplicatePreset indicates the value already exists, ignoring case.
	ErrDuplicatePreset = errors.New("preset already exists")

	// ErrPresetNotFound indicates no preset has the value.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrUnknownKind indicates an unrecognized preset kind.
	ErrUnknownKind = errors.New("unknown preset kind")
)

// Kind identifies a preset list.
type Kind string

const (
	KindAbbreviation Kind = "abbreviations"
	KindTitle        Kind = "titles"
	KindSuffix       Kind = "suffixes"
	KindExtension    Kind = "extensions"
)

// Kinds lists every preset kind in display order.
var Kinds = []Kind{KindAbbreviation, KindTitle, KindSuffix, KindExtension}

// ParseKind accepts a kind name in singular or plural form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abbreviation", "abbreviations", "abbr":
		return KindAbbreviation, nil
	case "title", "titles":
		return KindTitle, nil
	case "suffix", "suffixes":
		return KindSuffix, nil
	case "extension", "extensions", "ext":
		return KindExtension, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// PresetItem is a reusable value offered for a request field.
type PresetItem struct {
	ID          string `json:"id,omitempty" toml:"id,omitempty"`
	Value       string `json:"value" toml:"value"`
	Description string `json:"description,omitempty" toml:"description,omitempty"`
	Favorite    bool   `json:"favorite,omitempty" toml:"favorite,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" toml:"disabled,omitempty"`
}

// PresetsConfig holds the preset lists.
type PresetsConfig struct {
	Abbreviations []PresetItem `toml:"abbreviations"`
	Titles        []PresetItem `toml:"titles"`
	Suffixes      []PresetItem `toml:"suffixes"`
	Extensions    []PresetItem `toml:"extensions"`
}

var defaultPresets = map[Kind][]string{
	KindAbbreviation: {"CNF", "DOC", "LOG", "TEST", "TEMP"},
	KindTitle:        {"Development_note", "User_manual", "Technical_spec", "Meeting_notes", "Project_plan"},
	KindSuffix:       {"v1.0", "draft", "final", "review", "backup"},
	KindExtension:    {".txt", ".md", ".docx", ".pdf", ".xlsx", ".log"},
}

// DefaultPresets returns the built-in values for kind.
func DefaultPresets(kind Kind) []PresetItem {
	values := defaultPresets[kind]
	items := make([]PresetItem, len(values))
	for i, v := range values {
		items[i] = PresetItem{ID: uuid.NewString(), Value: v}
	}
	return items
}

// fillDefaults seeds lists the file does not mention and assigns IDs.
func (p *PresetsConfig) fillDefaults(md toml.MetaData) {
	for _, kind := range Kinds {
		list := p.list(kind)
		if !md.IsDefined("presets", string(kind)) {
			*list = DefaultPresets(kind)
		}
		for i := range *list {
			if (*list)[i].ID == "" {
				(*list)[i].ID = uuid.NewString()
			}
		}
	}
}

func (p *PresetsConfig) list(kind Kind) *[]PresetItem {
	switch kind {
	case KindAbbreviation:
		return &p.Abbreviations
	case KindTitle:
		return &p.Titles
	case KindSuffix:
		return &p.Suffixes
	case KindExtension:
		return &p.Extensions
	}
	return nil
}

// List returns the presets of kind. Disabled items are included only when
// all is true.
func (p *PresetsConfig) List(kind Kind, all bool) []PresetItem {
	list := p.list(kind)
	if list == nil {
		return nil
	}
	var out []PresetItem
	for _, item := range *list {
		if all || !item.Disabled {
			out = append(out, item)
		}
	}
	return out
}

// Values returns the enabled values of kind, favorites first.
func (p *PresetsConfig) Values(kind Kind) []string {
	var favs, rest []string
	for _, item := range p.List(kind, false) {
		if item.Favorite {
			favs = append(favs, item.Value)
		} else {
			rest = append(rest, item.Value)
		}
	}
	return append(favs, rest...)
}

// Add appends a preset. Values are trimmed and compared case-insensitively.
func (p *PresetsConfig) Add(kind Kind, value, description string) (PresetItem, error) {
	list := p.list(kind)
	if list == nil {
		return PresetItem{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return PresetItem{}, ErrBlankPreset
	}
	for _, item := range *list {
		if strings.EqualFold(item.Value, value) {
			return PresetItem{}, fmt.Errorf("%w: %s", ErrDuplicatePreset, value)
		}
	}

	item := PresetItem{ID: uuid.NewString(), Value: value, Description: strings.TrimSpace(description)}
	*list = append(*list, item)
	return item, nil
}

// Remove deletes the preset whose value matches, ignoring case.
func (p *PresetsConfig) Remove(kind Kind, value string) error {
	list := p.list(kind)
	if list == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	value = strings.TrimSpace(value)
	for i, item := range *list {
		if strings.EqualFold(item.Value, value) {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPresetNotFound, value)
}

// SetFavorite marks or unmarks the preset whose value matches.
func (p *PresetsConfig) SetFavorite(kind Kind, value string, favorite bool) error {
	list := p.list(kind)
	if list == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	for i := range *list {
		if strings.EqualFold((*list)[i].Value, strings.TrimSpace(value)) {
			(*list)[i].Favorite = favorite
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPresetNotFound, value)
}
