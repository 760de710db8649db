package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// exportFile is the on-disk envelope for exported snapshots.
type exportFile struct {
	Version   int         `json:"version" yaml:"version"`
	Snapshots []*Snapshot `json:"snapshots" yaml:"snapshots"`
}

const exportVersion = 1

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Export writes snaps to path as JSON or YAML, chosen by the file extension.
func Export(path string, snaps []*Snapshot) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	if snaps == nil {
		snaps = []*Snapshot{}
	}

	var data []byte
	doc := exportFile{Version: exportVersion, Snapshots: snaps}
	if format == "json" {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadExport reads snapshots written by Export. A bare snapshot or a list
// of snapshots is accepted as well as the envelope.
func ReadExport(path string) ([]*Snapshot, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	unmarshal := json.Unmarshal
	if format == "yaml" {
		unmarshal = yaml.Unmarshal
	}

	var doc exportFile
	if err := unmarshal(data, &doc); err == nil && doc.Snapshots != nil {
		return doc.Snapshots, nil
	}
	var list []*Snapshot
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}
	var one Snapshot
	if err := unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if one.Name == "" {
		return nil, fmt.Errorf("decode %s: no snapshots found", path)
	}
	return []*Snapshot{&one}, nil
}

// ExportAll writes every saved snapshot to path.
func (s *Store) ExportAll(path string) (int, error) {
	snaps, err := s.List(Filter{})
	if err != nil {
		return 0, err
	}
	return len(snaps), Export(path, snaps)
}

// Import saves snaps as new snapshots in one transaction. Each gets a fresh
// ID and zeroed usage statistics. A name already in use becomes "name (n)".
func (s *Store) Import(snaps []*Snapshot) ([]*Snapshot, error) {
	tx, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	imported := make([]*Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		c := snap.Clone()
		c.Name, err = uniqueName(tx, c.Name)
		if err != nil {
			return nil, err
		}
		if err := tx.Save(c); err != nil {
			return nil, err
		}
		imported = append(imported, c)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return imported, nil
}

// ImportFile reads path and imports its snapshots.
func (s *Store) ImportFile(path string) ([]*Snapshot, error) {
	snaps, err := ReadExport(path)
	if err != nil {
		return nil, err
	}
	return s.Import(snaps)
}

func uniqueName(tx *Tx, name string) (string, error) {
	name = strings.TrimSpace(name)
	candidate := name
	for n := 1; ; n++ {
		_, err := getSnapshotByName(tx.tx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
}
