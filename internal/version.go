// Package internal holds shared bits for the flashpack tool.
package internal

// Version is the flashpack release version.
const Version = "0.1.0"
