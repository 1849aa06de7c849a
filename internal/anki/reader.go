package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/flashpack/internal/table"
)

// schemaRevision tags which of the two known collection database layouts a
// package uses. It is resolved once per read by probing, then dispatched.
type schemaRevision int

const (
	// schemaLegacy stores model definitions as one JSON blob in col.models.
	schemaLegacy schemaRevision = iota
	// schemaNotetypes stores model definitions in a dedicated notetypes table.
	schemaNotetypes
)

var soundMarker = regexp.MustCompile(`\[sound:([^\]]+)\]`)

// Read opens an Anki package and reconstructs its word pairs as a table.
//
// The round trip is lossy: only native text, learning text and audio bytes
// survive. The result carries an audio column only if at least one note
// yielded audio. Notes empty in both text fields are dropped.
//
// A path without the .apkg extension fails with an InvalidPackageError
// before the file is opened; a missing file propagates the underlying
// not-found error unchanged.
func Read(path string) (*table.Table, error) {
	if !strings.HasSuffix(strings.ToLower(path), PackageExt) {
		return nil, &InvalidPackageError{Path: path}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	extractDir, err := os.MkdirTemp("", "flashpack_read_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer os.RemoveAll(extractDir)

	if err := extractArchive(path, extractDir); err != nil {
		return nil, fmt.Errorf("failed to extract package: %w", err)
	}

	dbPath, err := findCollectionDB(extractDir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection database: %w", err)
	}
	defer db.Close()

	revision := probeSchema(db)
	modelNames := readModelNames(db, revision)
	media := loadMedia(extractDir, filepath.Base(dbPath))

	pairs, err := readNotes(db, modelNames, media)
	if err != nil {
		return nil, err
	}

	return table.New(pairs...), nil
}

// extractArchive unpacks every archive entry flat into dir. Package entries
// are flat by construction; nested names are reduced to their base name.
func extractArchive(path, dir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		src, err := entry.Open()
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.Base(entry.Name))
		dst, err := os.Create(target)
		if err != nil {
			src.Close()
			return err
		}
		_, err = io.Copy(dst, src)
		dst.Close()
		src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// findCollectionDB locates the embedded database, preferring the newer
// collection.anki21 name over collection.anki2.
func findCollectionDB(dir string) (string, error) {
	for _, name := range []string{"collection.anki21", "collection.anki2"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no collection database found in package")
}

// probeSchema detects the database layout. Any probe failure is treated as
// the legacy revision, not as a fatal error.
func probeSchema(db *sql.DB) schemaRevision {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='notetypes'`,
	).Scan(&name)
	if err != nil {
		return schemaLegacy
	}
	return schemaNotetypes
}

// readModelNames returns model ID to model name, per the detected revision.
// Failures yield an empty map; model names only refine audio handling and
// their absence is never fatal.
func readModelNames(db *sql.DB, revision schemaRevision) map[string]string {
	switch revision {
	case schemaNotetypes:
		return modelNamesFromNotetypes(db)
	default:
		return modelNamesFromCol(db)
	}
}

func modelNamesFromNotetypes(db *sql.DB) map[string]string {
	names := make(map[string]string)
	rows, err := db.Query(`SELECT id, name FROM notetypes`)
	if err != nil {
		return names
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			continue
		}
		names[strconv.FormatInt(id, 10)] = name
	}
	return names
}

func modelNamesFromCol(db *sql.DB) map[string]string {
	names := make(map[string]string)

	// The blob may be stored as TEXT or as raw bytes; scan into []byte to
	// accept both.
	var blob []byte
	if err := db.QueryRow(`SELECT models FROM col`).Scan(&blob); err != nil {
		return names
	}

	var models map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(blob, &models); err != nil {
		return names
	}

	for id, model := range models {
		names[id] = model.Name
	}
	return names
}

// mediaSet is the extracted media payload: filename to on-disk path
// (resolved through the media index when one exists), plus all payload
// files ordered by name for the best-effort fallback.
type mediaSet struct {
	byName map[string]string
	files  []string
}

func (m *mediaSet) empty() bool {
	return len(m.byName) == 0 && len(m.files) == 0
}

// loadMedia gathers the extracted media files. The media index file maps
// numeric entry names to original filenames; a missing or malformed index
// is tolerated and audio resolution falls back to direct filenames.
func loadMedia(dir, dbName string) *mediaSet {
	m := &mediaSet{byName: make(map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return m
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == dbName || entry.Name() == "media" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m.byName[entry.Name()] = path
		m.files = append(m.files, path)
	}
	sort.Strings(m.files)

	indexData, err := os.ReadFile(filepath.Join(dir, "media"))
	if err != nil {
		return m
	}
	var index map[string]string
	if err := json.Unmarshal(indexData, &index); err != nil {
		return m
	}
	for num, name := range index {
		numPath := filepath.Join(dir, num)
		if _, err := os.Stat(numPath); err == nil {
			m.byName[name] = numPath
		}
	}

	return m
}

// resolve returns the audio bytes for a referenced filename. When the named
// file is absent, the first media file (by name) is substituted as a
// best-effort fallback. With no media at all, resolution is skipped.
func (m *mediaSet) resolve(name string) []byte {
	if m.empty() {
		return nil
	}
	if path, ok := m.byName[name]; ok {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	if len(m.files) > 0 {
		if data, err := os.ReadFile(m.files[0]); err == nil {
			return data
		}
	}
	return nil
}

func readNotes(db *sql.DB, modelNames map[string]string, media *mediaSet) ([]table.Pair, error) {
	rows, err := db.Query(`SELECT mid, flds FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var pairs []table.Pair
	for rows.Next() {
		var mid int64
		var flds string
		if err := rows.Scan(&mid, &flds); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		fields := strings.Split(flds, fieldSeparator)
		pair := table.Pair{Native: fields[0]}
		if len(fields) > 1 {
			pair.Learning = fields[1]
		}
		if pair.Native == "" && pair.Learning == "" {
			continue
		}

		if len(fields) > 2 {
			if match := soundMarker.FindStringSubmatch(fields[2]); match != nil {
				pair.Audio = media.resolve(match[1])
			}
		}

		// Models advertising audio keep the column present even when no
		// bytes could be recovered.
		name := modelNames[strconv.FormatInt(mid, 10)]
		if pair.Audio == nil && strings.Contains(name, "with Audio") {
			pair.Audio = []byte{}
		}

		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return pairs, nil
}
