// Package cli wires the cobra command, flag definitions and viper
// configuration for the flashpack binary.
package cli
