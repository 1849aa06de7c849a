package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// PackageExt is the canonical extension of an Anki package file.
const PackageExt = ".apkg"

// fieldSeparator joins a note's field values into the single string stored
// in the notes table (ASCII 31, the Anki convention).
const fieldSeparator = "\x1f"

// Write serializes the deck to an Anki package at path, overwriting any
// existing file. The extension is appended if missing (checked
// case-insensitively, never doubled) and the final path is returned.
//
// The parent directory of path must already exist; it is never created.
// The deck's staging directory is removed on every exit path, so a deck can
// be written at most once.
func (d *Deck) Write(path string) (string, error) {
	defer d.releaseStaging()

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", &InvalidOutputPathError{Dir: dir}
	}

	if !strings.HasSuffix(strings.ToLower(path), PackageExt) {
		path += PackageExt
	}

	buildDir, err := os.MkdirTemp("", "flashpack_build_*")
	if err != nil {
		return "", fmt.Errorf("failed to create build directory: %w", err)
	}
	defer os.RemoveAll(buildDir)

	mediaIndex, err := d.copyMediaFiles(buildDir)
	if err != nil {
		return "", fmt.Errorf("failed to copy media files: %w", err)
	}

	if err := writeMediaIndex(buildDir, mediaIndex); err != nil {
		return "", fmt.Errorf("failed to create media index: %w", err)
	}

	dbPath := filepath.Join(buildDir, "collection.anki2")
	if err := d.createDatabase(dbPath); err != nil {
		return "", fmt.Errorf("failed to create database: %w", err)
	}

	if err := createZipPackage(buildDir, path); err != nil {
		return "", fmt.Errorf("failed to create zip package: %w", err)
	}

	return path, nil
}

// copyMediaFiles copies the staged media files into the build directory
// under their numeric package names and returns the number-to-filename index.
func (d *Deck) copyMediaFiles(buildDir string) (map[string]string, error) {
	index := make(map[string]string, len(d.mediaFiles))
	for i, staged := range d.mediaFiles {
		target := filepath.Join(buildDir, fmt.Sprintf("%d", i))
		if err := copyFile(staged, target); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", staged, err)
		}
		index[fmt.Sprintf("%d", i)] = filepath.Base(staged)
	}
	return index, nil
}

func writeMediaIndex(buildDir string, index map[string]string) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(buildDir, "media"), data, 0644)
}

// createDatabase creates the Anki SQLite database with the deck's notes,
// cards and model definitions.
func (d *Deck) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := d.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := d.insertNotesAndCards(db); err != nil {
		return err
	}

	return nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func (d *Deck) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", d.id): deckConfig(d.id, d.name,
			"Flashcard deck created by flashpack", now),
	}
	decksJSON, _ := json.Marshal(decks)

	models := make(map[string]interface{}, len(d.models))
	for id, model := range d.models {
		models[fmt.Sprintf("%d", id)] = d.modelConfig(model, now)
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      "",
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

// modelConfig renders a CardModel as the note type JSON Anki expects in
// col.models.
func (d *Deck) modelConfig(model *CardModel, now int64) map[string]interface{} {
	flds := make([]map[string]interface{}, len(model.Fields))
	for i, name := range model.Fields {
		flds[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	tmpls := make([]map[string]interface{}, len(model.Templates))
	req := make([][]interface{}, len(model.Templates))
	for i, tmpl := range model.Templates {
		tmpls[i] = map[string]interface{}{
			"name":  tmpl.Name,
			"ord":   i,
			"qfmt":  tmpl.QFmt,
			"afmt":  tmpl.AFmt,
			"did":   nil,
			"bqfmt": "",
			"bafmt": "",
		}
		// Template i asks the field it renders on its front.
		req[i] = []interface{}{i, "all", []int{i}}
	}

	return map[string]interface{}{
		"id":    model.ID,
		"name":  model.Name,
		"type":  0,
		"mod":   now,
		"usn":   -1,
		"sortf": 0,
		"did":   d.id,
		"req":   req,
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls":     tmpls,
		"css":       model.CSS,
	}
}

func (d *Deck) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, n := range d.notes {
		// Leave ID space for up to two cards per note.
		noteID := now.UnixMilli() + int64(i*3)

		_, err := db.Exec(noteQuery,
			noteID,                                 // id
			n.guid,                                 // guid
			n.model.ID,                             // mid
			now.Unix(),                             // mod
			-1,                                     // usn
			"",                                     // tags
			strings.Join(n.fields, fieldSeparator), // flds
			n.fields[0],                            // sfld (sort field)
			0,                                      // csum
			0,                                      // flags
			"",                                     // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := range n.model.Templates {
			_, err = db.Exec(cardQuery,
				noteID+1+int64(ord), // id
				noteID,              // nid
				d.id,                // did
				ord,                 // ord
				now.Unix(),          // mod
				-1,                  // usn
				0,                   // type (0=new)
				0,                   // queue (0=new)
				noteID+int64(ord),   // due (position for new cards)
				0,                   // ivl
				0,                   // factor
				0,                   // reps
				0,                   // lapses
				0,                   // left
				0,                   // odue
				0,                   // odid
				0,                   // flags
				"",                  // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}

	return nil
}

// createZipPackage zips every file in buildDir into the final .apkg.
func createZipPackage(buildDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(buildDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(buildDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
