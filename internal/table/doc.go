// Package table implements the tabular word-pair layer: parsing the
// semicolon-delimited input format, merging tables, and exporting a table
// read back from a package file.
package table
