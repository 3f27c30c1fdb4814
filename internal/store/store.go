// Package store implements the pathfinder's persistent write-through cache:
// four independent key-value stores (label, description, distance,
// adjacency) that pull through a Fetcher on cache miss and persist the
// result for subsequent reads, honoring a single-writer discipline per
// store file.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGO)

	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/fetcher"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// kv is a single SQLite-backed string-keyed byte-value table, guarded by a
// flock-based single-writer lock so only one Store instance writes to its
// file at a time (spec §5: "single-writer during a query").
type kv struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

func openKV(path, table string) (*kv, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.StoreError(fmt.Sprintf("cannot create directory for %s", path), err)
		}
	}

	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.StoreError(fmt.Sprintf("cannot open store %s", path), err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value BLOB NOT NULL)`, table)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.StoreError(fmt.Sprintf("cannot create table %s in %s", table, path), err)
	}

	var fl *flock.Flock
	if path != ":memory:" {
		fl = flock.New(path + ".lock")
	}

	return &kv{db: db, lock: fl, path: path}, nil
}

func (k *kv) get(table, key string) ([]byte, bool, error) {
	var value []byte
	row := k.db.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE key = ?", table), key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, errors.StoreError(fmt.Sprintf("read failed in %s", k.path), err)
	}
	return value, true, nil
}

func (k *kv) putBatch(table string, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}

	if k.lock != nil {
		if err := k.lock.Lock(); err != nil {
			return errors.StoreError(fmt.Sprintf("cannot acquire write lock on %s", k.path), err)
		}
		defer func() { _ = k.lock.Unlock() }()
	}

	tx, err := k.db.Begin()
	if err != nil {
		return errors.StoreError(fmt.Sprintf("cannot begin transaction on %s", k.path), err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT OR REPLACE INTO %s (key, value) VALUES (?, ?)", table))
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreError(fmt.Sprintf("cannot prepare write on %s", k.path), err)
	}
	defer stmt.Close()

	for key, value := range items {
		if _, err := stmt.Exec(key, value); err != nil {
			_ = tx.Rollback()
			return errors.StoreError(fmt.Sprintf("write failed in %s", k.path), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreError(fmt.Sprintf("cannot commit transaction on %s", k.path), err)
	}

	return nil
}

func (k *kv) close() error {
	return k.db.Close()
}

// Store is the four-way persistent write-through cache over label,
// description, distance, and adjacency data, pulling through fetch on
// demand.
type Store struct {
	label      *kv
	desc       *kv
	distance   *kv
	adjacency  *kv
	fetch      fetcher.Fetcher
	fetchDepth int
}

// Config names the four on-disk locations backing the four stores.
type Config struct {
	LabelPath    string
	DescPath     string
	DistancePath string
	AdjacencyPath string
}

// Open creates or opens the four stores at the paths in cfg, wired to fetch
// for pull-through on cache miss.
func Open(cfg Config, fetch fetcher.Fetcher) (*Store, error) {
	label, err := openKV(cfg.LabelPath, "labels")
	if err != nil {
		return nil, err
	}
	desc, err := openKV(cfg.DescPath, "descriptions")
	if err != nil {
		return nil, err
	}
	distance, err := openKV(cfg.DistancePath, "distances")
	if err != nil {
		return nil, err
	}
	adjacency, err := openKV(cfg.AdjacencyPath, "adjacency")
	if err != nil {
		return nil, err
	}

	return &Store{
		label:      label,
		desc:       desc,
		distance:   distance,
		adjacency:  adjacency,
		fetch:      fetch,
		fetchDepth: 2,
	}, nil
}

// Close releases the underlying database handles.
func (s *Store) Close() error {
	var firstErr error
	for _, c := range []*kv{s.label, s.desc, s.distance, s.adjacency} {
		if err := c.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GetAdjacentEntities returns entity's outgoing (PID, EID) edges, pulling
// through the Remote Fetcher's transitive bundle on any cache miss among
// entity's label, description, or adjacency records.
func (s *Store) GetAdjacentEntities(entity graph.EID) (graph.Adjacency, error) {
	_, haveLabel, err := s.label.get("labels", string(entity))
	if err != nil {
		return nil, err
	}
	_, haveDesc, err := s.desc.get("descriptions", string(entity))
	if err != nil {
		return nil, err
	}
	_, haveAdj, err := s.adjacency.get("adjacency", string(entity))
	if err != nil {
		return nil, err
	}

	if !haveLabel || !haveDesc || !haveAdj {
		if err := s.warmBundle(entity); err != nil {
			return nil, err
		}
	}

	raw, ok, err := s.adjacency.get("adjacency", string(entity))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeAdjacencyMissing,
			"entity not present after bundle fetch: "+string(entity), nil)
	}

	return decodeAdjacency(raw), nil
}

// warmBundle fetches the transitive adjacency bundle for entity (retrying
// at depth 1 if depth 2 fails, per spec §4.1.1), then persists every label,
// description, and adjacency record it contains as one atomic batch per
// kind.
func (s *Store) warmBundle(entity graph.EID) error {
	bundle, err := s.fetch.FetchAdjacentBundle(entity, s.fetchDepth)
	if err != nil {
		bundle, err = s.fetch.FetchAdjacentBundle(entity, 1)
		if err != nil {
			return err
		}
	}

	labels := make(map[string][]byte, len(bundle.QLabels)+len(bundle.PLabels))
	for eid, label := range bundle.QLabels {
		labels[string(eid)] = []byte(label)
	}
	for pid, label := range bundle.PLabels {
		labels[string(pid)] = []byte(label)
	}
	if err := s.label.putBatch("labels", labels); err != nil {
		return err
	}

	descs := make(map[string][]byte, len(bundle.QDescriptions)+len(bundle.PDescriptions))
	for eid, desc := range bundle.QDescriptions {
		descs[string(eid)] = []byte(desc)
	}
	for pid, desc := range bundle.PDescriptions {
		descs[string(pid)] = []byte(desc)
	}
	if err := s.desc.putBatch("descriptions", descs); err != nil {
		return err
	}

	adj := make(map[string][]byte, len(bundle.AdjacentEntities))
	for eid, tokens := range bundle.AdjacentEntities {
		if _, ok, err := s.adjacency.get("adjacency", string(eid)); err == nil && !ok {
			adj[string(eid)] = encodeAdjacency(tokens)
		}
	}
	if err := s.adjacency.putBatch("adjacency", adj); err != nil {
		return err
	}

	return nil
}

// GetLabel returns entity's label, falling back to a single-entity fetch on
// cache miss.
func (s *Store) GetLabel(entity graph.EID) string {
	return s.getTextField(s.label, "labels", entity, true)
}

// GetDescription returns entity's description, falling back to a
// single-entity fetch on cache miss.
func (s *Store) GetDescription(entity graph.EID) string {
	return s.getTextField(s.desc, "descriptions", entity, false)
}

// GetPropLabel returns prop's label from the label cache, populated as a
// side effect of any bundle fetch that traversed the property. Unlike
// GetLabel, there is no single-property fallback fetch — the Remote
// Fetcher only exposes entity-level lookups (spec §4.1.2) — so a cold
// property simply renders with an empty label.
func (s *Store) GetPropLabel(prop graph.PID) string {
	value, ok, err := s.label.get("labels", string(prop))
	if err != nil || !ok {
		return ""
	}
	return string(value)
}

// GetPropDescription returns prop's description, same caveats as
// GetPropLabel.
func (s *Store) GetPropDescription(prop graph.PID) string {
	value, ok, err := s.desc.get("descriptions", string(prop))
	if err != nil || !ok {
		return ""
	}
	return string(value)
}

func (s *Store) getTextField(store *kv, table string, entity graph.EID, wantLabel bool) string {
	value, ok, err := store.get(table, string(entity))
	if err == nil && ok {
		return string(value)
	}

	slog.Warn("store cache miss, falling back to single-entity fetch",
		slog.String("entity", string(entity)))

	label, desc, err := s.fetch.FetchLabelDescription(entity)
	if err != nil {
		return ""
	}

	_ = s.label.putBatch("labels", map[string][]byte{string(entity): []byte(label)})
	_ = s.desc.putBatch("descriptions", map[string][]byte{string(entity): []byte(desc)})

	if wantLabel {
		return label
	}
	return desc
}

// GetSemanticDistance returns the semantic distance between a and b, using
// the composite "label description" strings as the fetch/cache key.
func (s *Store) GetSemanticDistance(a, b graph.EID) (float64, error) {
	sa := s.GetLabel(a) + " " + s.GetDescription(a)
	sb := s.GetLabel(b) + " " + s.GetDescription(b)
	key := sa + "&" + sb

	if raw, ok, err := s.distance.get("distances", key); err == nil && ok {
		parsed, parseErr := strconv.ParseFloat(string(raw), 64)
		if parseErr == nil {
			return parsed, nil
		}
	}

	d, err := s.fetch.FetchSemanticDistance(sa, sb)
	if err != nil {
		return 0, err
	}

	rendered := strconv.FormatFloat(d, 'g', -1, 64)
	if err := s.distance.putBatch("distances", map[string][]byte{key: []byte(rendered)}); err != nil {
		return 0, err
	}

	return d, nil
}

// encodeAdjacency serializes "PID-EID" tokens as a length-prefixed sequence
// of newline-terminated strings, stable across runs.
func encodeAdjacency(tokens []string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", len(tokens))
	for _, t := range tokens {
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func decodeAdjacency(raw []byte) graph.Adjacency {
	lines := strings.Split(string(raw), "\n")
	if len(lines) == 0 {
		return nil
	}

	count, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil
	}

	adj := make(graph.Adjacency, 0, count)
	for i := 1; i <= count && i < len(lines); i++ {
		token := lines[i]
		idx := strings.Index(token, "-")
		if idx < 0 {
			continue
		}
		adj = append(adj, graph.Edge{
			Prop: graph.PID(token[:idx]),
			To:   graph.EID(token[idx+1:]),
		})
	}
	return adj
}
