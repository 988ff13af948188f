package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"ngc-i18n/packages/core/src/render3/interfaces"
)

// Artifact is the portable form of a compiled scope: the flat streams of the
// block and of every ICU it registered. Sanitizers are stored by name.
type Artifact struct {
	ID     string              `json:"id"`
	Create []any               `json:"create"`
	Update []any               `json:"update"`
	Icus   map[int]IcuArtifact `json:"icus,omitempty"`
}

// IcuArtifact is the portable form of one TIcu.
type IcuArtifact struct {
	Type                  string   `json:"type"`
	AnchorIdx             int      `json:"anchorIdx"`
	CurrentCaseLViewIndex int      `json:"currentCaseLViewIndex"`
	Cases                 []string `json:"cases"`
	Create                [][]any  `json:"create"`
	Remove                [][]any  `json:"remove"`
	Update                [][]any  `json:"update"`
}

// NewArtifact flattens tI18n and the ICUs registered in tView.
func NewArtifact(id string, tI18n *interfaces.TI18n, tView *interfaces.TView) *Artifact {
	a := &Artifact{
		ID:     id,
		Create: tI18n.Create.Encode(),
		Update: EncodeUpdate(tI18n.Update),
	}
	for anchor, icu := range tView.TIcus() {
		if a.Icus == nil {
			a.Icus = make(map[int]IcuArtifact)
		}
		ia := IcuArtifact{
			Type:                  icu.Type.String(),
			AnchorIdx:             icu.AnchorIdx,
			CurrentCaseLViewIndex: icu.CurrentCaseLViewIndex,
			Cases:                 icu.Cases,
		}
		for i := range icu.Cases {
			ia.Create = append(ia.Create, encodeMarkers(icu.Create[i].Encode()))
			ia.Remove = append(ia.Remove, icu.Remove[i].Encode())
			ia.Update = append(ia.Update, EncodeUpdate(icu.Update[i]))
		}
		a.Icus[anchor] = ia
	}
	return a
}

// EncodeUpdate flattens an update stream with sanitizers replaced by their
// names, or nil.
func EncodeUpdate(opCodes interfaces.I18nUpdateOpCodes) []any {
	out := make([]any, 0, 4*len(opCodes))
	for _, op := range opCodes {
		out = append(out, int(int32(op.Mask)), op.Size())
		for _, part := range op.Parts {
			out = append(out, part.Encode())
		}
		out = append(out, op.Ref())
		if op.Kind == interfaces.UpdateAttr {
			var sanitizer any
			if op.SanitizerName != "" {
				sanitizer = op.SanitizerName
			}
			out = append(out, op.AttrName, sanitizer)
		}
	}
	return out
}

func encodeMarkers(flat []any) []any {
	for i, v := range flat {
		if m, ok := v.(*interfaces.I18nMarker); ok {
			flat[i] = m.Marker
		}
	}
	return flat
}

// ErrNotFound is returned by Get when no artifact is stored under a key.
var ErrNotFound = errors.New("artifact not found")

// Store keeps compiled artifacts in a SQLite database so unchanged messages
// are not recompiled across runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path. Use ":memory:" for a private
// in-memory store.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every connection would get its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS artifacts (
  key        TEXT PRIMARY KEY,
  message    TEXT NOT NULL,
  body       TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get loads the artifact stored under key.
func (s *Store) Get(ctx context.Context, key string) (*Artifact, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM artifacts WHERE key = ?", key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", key, err)
	}
	return &a, nil
}

// Put stores a under key, replacing any previous artifact.
func (s *Store) Put(ctx context.Context, key, message string, a *Artifact) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO artifacts(key, message, body) VALUES(?,?,?)
		 ON CONFLICT(key) DO UPDATE SET message = excluded.message, body = excluded.body, created_at = CURRENT_TIMESTAMP`,
		key, message, string(body))
	return err
}

// Count returns the number of stored artifacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artifacts").Scan(&n)
	return n, err
}
