// Package processor orchestrates a flashpack run from parsed flags to a
// written package file or exported CSV.
package processor
