// Package audio synthesizes spoken-word clips for flashcards via
// text-to-speech providers. OpenAI TTS is the primary provider; espeak-ng
// serves as a local fallback.
package audio
