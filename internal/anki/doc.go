// Package anki builds Anki flashcard decks from word-pair tables and
// serializes them to .apkg package files, and reads packages back into
// tables. The package format is a zip archive holding a SQLite collection
// database plus numbered media files with a JSON index.
package anki
