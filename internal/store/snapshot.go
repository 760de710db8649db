package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
	"github.com/vmunix/newfile/internal/validate"
)

// Snapshot is a saved request with its component flags, replacement rules
// and usage statistics.
type Snapshot struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Request     naming.Request `json:"request" yaml:"request"`
	Flags       naming.Flags   `json:"flags" yaml:"flags"`
	Rules       []replace.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Favorite    bool           `json:"favorite" yaml:"favorite"`
	UsageCount  int            `json:"usage_count" yaml:"usage_count"`
	LastUsed    *time.Time     `json:"last_used,omitempty" yaml:"last_used,omitempty"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	ModifiedAt  time.Time      `json:"modified_at" yaml:"modified_at"`
}

// NewSnapshot captures req, flags and rules under name.
func NewSnapshot(name string, req *naming.Request, flags naming.Flags, rules []replace.Rule) *Snapshot {
	return &Snapshot{
		Name:    strings.TrimSpace(name),
		Request: *req,
		Flags:   flags,
		Rules:   rules,
	}
}

// Validate checks the fields a snapshot needs to be reusable.
func (s *Snapshot) Validate() *validate.Result {
	r := validate.Success()
	if strings.TrimSpace(s.Name) == "" {
		r.AddError("name is required")
	}
	if strings.TrimSpace(s.Request.Abbreviation) == "" && strings.TrimSpace(s.Request.Title) == "" {
		r.AddError("abbreviation or title is required")
	}
	if strings.TrimSpace(s.Request.Extension) == "" {
		r.AddError("extension is required")
	}
	if strings.TrimSpace(s.Request.OutputPath) == "" {
		r.AddError("output path is required")
	}
	for i := range s.Rules {
		if err := s.Rules[i].Validate(); err != nil {
			r.AddWarning(fmt.Sprintf("rule %d: %v", i+1, err))
		}
	}
	return r
}

// Clone returns a copy with a new identity and fresh usage statistics.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.ID = ""
	c.UsageCount = 0
	c.LastUsed = nil
	c.CreatedAt = time.Time{}
	c.ModifiedAt = time.Time{}
	c.Tags = append([]string(nil), s.Tags...)
	c.Rules = make([]replace.Rule, len(s.Rules))
	for i := range s.Rules {
		c.Rules[i] = s.Rules[i].Clone()
	}
	return &c
}

// ToRequest returns the stored request dated now, so that reuse produces a
// fresh name.
func (s *Snapshot) ToRequest() *naming.Request {
	req := s.Request.Clone()
	req.DateTime = time.Time{}
	return req
}

// Job returns a generator job for the snapshot. Dynamic tokens expand
// against the snapshot's stored date when it has one.
func (s *Snapshot) Job() generator.Job {
	return generator.Job{
		Request:    s.ToRequest(),
		Flags:      s.Flags,
		Rules:      s.Rules,
		Base:       s.Request.DateTime,
		SnapshotID: s.ID,
	}
}

// SortField orders snapshot listings.
type SortField string

const (
	SortByName       SortField = "name"
	SortByCreated    SortField = "created"
	SortByModified   SortField = "modified"
	SortByUsageCount SortField = "usage"
	SortByLastUsed   SortField = "last_used"
)

var sortColumns = map[SortField]string{
	SortByName:       "name COLLATE NOCASE",
	SortByCreated:    "created_at",
	SortByModified:   "modified_at",
	SortByUsageCount: "usage_count",
	SortByLastUsed:   "last_used",
}

// ParseSortField accepts the names of SortField values.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return SortByName, nil
	}
	if _, ok := sortColumns[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

// Filter specifies criteria for listing snapshots.
type Filter struct {
	Favorites bool      // only favorites
	Used      bool      // only snapshots used at least once
	Sort      SortField // default SortByName
	Desc      bool
	Limit     int
}

const snapshotColumns = `id, name, date_time, abbreviation, title, suffix, extension, output_path, template_path,
	with_date_time, with_abbreviation, with_title, with_suffix, rules, tags, description, favorite,
	usage_count, last_used, created_at, modified_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		s                   Snapshot
		dateTime, lastUsed  sql.NullTime
		rulesJSON, tagsJSON string
	)
	err := row.Scan(&s.ID, &s.Name, &dateTime,
		&s.Request.Abbreviation, &s.Request.Title, &s.Request.Suffix, &s.Request.Extension,
		&s.Request.OutputPath, &s.Request.TemplatePath,
		&s.Flags.DateTime, &s.Flags.Abbreviation, &s.Flags.Title, &s.Flags.Suffix,
		&rulesJSON, &tagsJSON, &s.Description, &s.Favorite,
		&s.UsageCount, &lastUsed, &s.CreatedAt, &s.ModifiedAt)
	if err != nil {
		return nil, err
	}

	if dateTime.Valid {
		s.Request.DateTime = dateTime.Time
	}
	if lastUsed.Valid {
		t := lastUsed.Time
		s.LastUsed = &t
	}
	if err := json.Unmarshal([]byte(rulesJSON), &s.Rules); err != nil {
		return nil, fmt.Errorf("decode rules of %s: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &s.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %s: %w", s.ID, err)
	}
	return &s, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func encodeLists(s *Snapshot) (rules, tags string, err error) {
	r := s.Rules
	if r == nil {
		r = []replace.Rule{}
	}
	rb, err := json.Marshal(r)
	if err != nil {
		return "", "", fmt.Errorf("encode rules: %w", err)
	}
	t := s.Tags
	if t == nil {
		t = []string{}
	}
	tb, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}
	return string(rb), string(tb), nil
}

func saveSnapshot(q querier, s *Snapshot) error {
	s.Name = strings.TrimSpace(s.Name)
	if v := s.Validate(); !v.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(v.Errors, "; "))
	}

	rules, tags, err := encodeLists(s)
	if err != nil {
		return err
	}

	now := time.Now()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}

	_, err = q.Exec(`
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, date_time = excluded.date_time,
			abbreviation = excluded.abbreviation, title = excluded.title, suffix = excluded.suffix,
			extension = excluded.extension, output_path = excluded.output_path, template_path = excluded.template_path,
			with_date_time = excluded.with_date_time, with_abbreviation = excluded.with_abbreviation,
			with_title = excluded.with_title, with_suffix = excluded.with_suffix,
			rules = excluded.rules, tags = excluded.tags, description = excluded.description,
			favorite = excluded.favorite, modified_at = excluded.modified_at`,
		s.ID, s.Name, nullTime(s.Request.DateTime),
		s.Request.Abbreviation, s.Request.Title, s.Request.Suffix, s.Request.Extension,
		s.Request.OutputPath, s.Request.TemplatePath,
		s.Flags.DateTime, s.Flags.Abbreviation, s.Flags.Title, s.Flags.Suffix,
		rules, tags, s.Description, s.Favorite,
		s.UsageCount, lastUsedArg(s.LastUsed), s.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.Name, mapSQLiteError(err))
	}
	s.ModifiedAt = now
	return nil
}

func lastUsedArg(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Save inserts s or updates the snapshot with the same ID. Names are unique
// ignoring case; a clash returns ErrDuplicate. Sets ID, CreatedAt and
// ModifiedAt on the struct. Usage statistics are only written on insert.
func (s *Store) Save(snap *Snapshot) error { return saveSnapshot(s.db, snap) }

// Save inserts or updates a snapshot within a transaction.
func (t *Tx) Save(snap *Snapshot) error { return saveSnapshot(t.tx, snap) }

func getSnapshot(q querier, id string) (*Snapshot, error) {
	s, err := scanSnapshot(q.QueryRow("SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", id, mapSQLiteError(err))
	}
	return s, nil
}

// Get retrieves a snapshot by ID.
// Returns ErrNotFound if the snapshot does not exist.
func (s *Store) Get(id string) (*Snapshot, error) { return getSnapshot(s.db, id) }

// Get retrieves a snapshot by ID within a transaction.
func (t *Tx) Get(id string) (*Snapshot, error) { return getSnapshot(t.tx, id) }

func getSnapshotByName(q querier, name string) (*Snapshot, error) {
	s, err := scanSnapshot(q.QueryRow("SELECT "+snapshotColumns+" FROM snapshots WHERE name = ?", strings.TrimSpace(name)))
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", name, mapSQLiteError(err))
	}
	return s, nil
}

// GetByName retrieves a snapshot by name, ignoring case.
// Returns ErrNotFound if no snapshot has the name.
func (s *Store) GetByName(name string) (*Snapshot, error) { return getSnapshotByName(s.db, name) }

// Resolve finds a snapshot by ID or, failing that, by name.
func (s *Store) Resolve(ref string) (*Snapshot, error) {
	snap, err := getSnapshot(s.db, ref)
	if err == nil {
		return snap, nil
	}
	return getSnapshotByName(s.db, ref)
}

func listSnapshots(q querier, f Filter) ([]*Snapshot, error) {
	var conditions []string
	if f.Favorites {
		conditions = append(conditions, "favorite = 1")
	}
	if f.Used {
		conditions = append(conditions, "usage_count > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	col, ok := sortColumns[f.Sort]
	if !ok {
		col = sortColumns[SortByName]
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}

	query := "SELECT " + snapshotColumns + " FROM snapshots" + whereClause +
		" ORDER BY " + col + " " + dir + ", name COLLATE NOCASE ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return results, nil
}

// List returns snapshots matching the filter.
func (s *Store) List(f Filter) ([]*Snapshot, error) { return listSnapshots(s.db, f) }

// List returns snapshots matching the filter within a transaction.
func (t *Tx) List(f Filter) ([]*Snapshot, error) { return listSnapshots(t.tx, f) }

// MostUsed returns up to limit snapshots used at least once, most used first.
func (s *Store) MostUsed(limit int) ([]*Snapshot, error) {
	return s.List(Filter{Used: true, Sort: SortByUsageCount, Desc: true, Limit: limit})
}

// Recent returns up to limit snapshots by most recent use.
func (s *Store) Recent(limit int) ([]*Snapshot, error) {
	return s.List(Filter{Used: true, Sort: SortByLastUsed, Desc: true, Limit: limit})
}

// Favorites returns favorite snapshots sorted by name.
func (s *Store) Favorites() ([]*Snapshot, error) {
	return s.List(Filter{Favorites: true})
}

func deleteSnapshot(q querier, id string) error {
	result, err := q.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a snapshot. History entries keep their file records.
// Returns ErrNotFound if the snapshot does not exist.
func (s *Store) Delete(id string) error { return deleteSnapshot(s.db, id) }

// Delete removes a snapshot within a transaction.
func (t *Tx) Delete(id string) error { return deleteSnapshot(t.tx, id) }

func updateOne(q querier, op, query string, args ...any) error {
	result, err := q.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// MarkUsed increments the usage count and sets the last-used time.
func (s *Store) MarkUsed(id string) error {
	return updateOne(s.db, "mark snapshot "+id+" used",
		"UPDATE snapshots SET usage_count = usage_count + 1, last_used = ? WHERE id = ?", time.Now(), id)
}

// SetFavorite marks or unmarks a snapshot as favorite.
func (s *Store) SetFavorite(id string, favorite bool) error {
	return updateOne(s.db, "set favorite on snapshot "+id,
		"UPDATE snapshots SET favorite = ?, modified_at = ? WHERE id = ?", favorite, time.Now(), id)
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	snap, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if err := s.SetFavorite(id, !snap.Favorite); err != nil {
		return false, err
	}
	return !snap.Favorite, nil
}

// Count returns the number of saved snapshots.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}
