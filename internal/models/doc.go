// Package models lists the voices and OpenAI models available for audio
// synthesis.
package models
