package audio

import (
	"fmt"
	"sort"
	"strings"
)

// voiceProfile describes how a locale is rendered by the providers: the
// default OpenAI voice and pronunciation instruction, and the espeak-ng
// voice name.
type voiceProfile struct {
	Language    string
	OpenAIVoice string
	Instruction string
	ESpeakVoice string
}

// voiceProfiles maps BCP 47 locale tags to provider settings. Locales
// outside this table have no voice and synthesis for them fails before any
// network call.
var voiceProfiles = map[string]voiceProfile{
	"bg-BG": {Language: "Bulgarian", OpenAIVoice: "alloy", ESpeakVoice: "bg"},
	"de-DE": {Language: "German", OpenAIVoice: "onyx", ESpeakVoice: "de"},
	"en-GB": {Language: "British English", OpenAIVoice: "fable", ESpeakVoice: "en-gb"},
	"en-US": {Language: "American English", OpenAIVoice: "alloy", ESpeakVoice: "en-us"},
	"es-ES": {Language: "Spanish", OpenAIVoice: "nova", ESpeakVoice: "es"},
	"fr-FR": {Language: "French", OpenAIVoice: "shimmer", ESpeakVoice: "fr"},
	"it-IT": {Language: "Italian", OpenAIVoice: "nova", ESpeakVoice: "it"},
	"ja-JP": {Language: "Japanese", OpenAIVoice: "coral", ESpeakVoice: "ja"},
	"pl-PL": {Language: "Polish", OpenAIVoice: "echo", ESpeakVoice: "pl"},
	"pt-BR": {Language: "Brazilian Portuguese", OpenAIVoice: "nova", ESpeakVoice: "pt-br"},
	"ru-RU": {Language: "Russian", OpenAIVoice: "onyx", ESpeakVoice: "ru"},
	"tr-TR": {Language: "Turkish", OpenAIVoice: "echo", ESpeakVoice: "tr"},
}

// profileForLocale resolves a locale to its voice profile.
func profileForLocale(locale string) (voiceProfile, error) {
	profile, ok := voiceProfiles[locale]
	if !ok {
		return voiceProfile{}, fmt.Errorf("no voice found for locale: %s", locale)
	}
	if profile.Instruction == "" {
		profile.Instruction = fmt.Sprintf(
			"You are speaking %s. Pronounce the text with authentic %s phonetics. Speak slowly and clearly for language learners.",
			profile.Language, profile.Language)
	}
	return profile, nil
}

// SupportedLocales returns the locales with a configured voice, sorted.
func SupportedLocales() []string {
	locales := make([]string, 0, len(voiceProfiles))
	for locale := range voiceProfiles {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// LanguageForLocale returns the display language of a supported locale, or
// the empty string for an unknown one.
func LanguageForLocale(locale string) string {
	return voiceProfiles[locale].Language
}

// ValidateText rejects input no provider can usefully speak.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}
