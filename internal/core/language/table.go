// Package language maps client language codes to the locale tags the
// NLLB-200 model family understands, and resolves the effective source and
// target languages for a translation request.
package language

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultCode is the language every unresolvable code falls back to.
const DefaultCode = "en"

// localeTags maps client language codes (ISO 639-1) to NLLB-200 locale
// tags. The mapping is bijective; reverseTags is derived from it in init.
var localeTags = map[string]string{
	"en": "eng_Latn",
	"ar": "arb_Arab",
	"fr": "fra_Latn",
	"es": "spa_Latn",
	"de": "deu_Latn",
	"ru": "rus_Cyrl",
	"zh": "zho_Hans",
	"ja": "jpn_Jpan",
	"pt": "por_Latn",
	"it": "ita_Latn",
	"nl": "nld_Latn",
	"cs": "ces_Latn",
	"pl": "pol_Latn",
	"tr": "tur_Latn",
	"ko": "kor_Hang",
	"uk": "ukr_Cyrl",
	"vi": "vie_Latn",
	"id": "ind_Latn",
	"fa": "pes_Arab",
	"sv": "swe_Latn",
	"hu": "hun_Latn",
	"fi": "fin_Latn",
	"da": "dan_Latn",
	"no": "nob_Latn",
	"he": "heb_Hebr",
	"th": "tha_Thai",
	"hi": "hin_Deva",
	"bg": "bul_Cyrl",
	"el": "ell_Grek",
	"ro": "ron_Latn",
	"sk": "slk_Latn",
	"lt": "lit_Latn",
	"lv": "lvs_Latn",
	"et": "est_Latn",
	"sr": "srp_Cyrl",
	"hr": "hrv_Latn",
	"sl": "slv_Latn",
	"ca": "cat_Latn",
	"ms": "zsm_Latn",
	"ur": "urd_Arab",
}

// languageNames provides human-readable names for supported language codes
var languageNames = map[string]string{
	"en": "English",
	"ar": "العربية (Arabic)",
	"fr": "Français (French)",
	"es": "Español (Spanish)",
	"de": "Deutsch (German)",
	"ru": "Русский (Russian)",
	"zh": "中文 (Chinese)",
	"ja": "日本語 (Japanese)",
	"pt": "Português (Portuguese)",
	"it": "Italiano (Italian)",
	"nl": "Nederlands (Dutch)",
	"cs": "Čeština (Czech)",
	"pl": "Polski (Polish)",
	"tr": "Türkçe (Turkish)",
	"ko": "한국어 (Korean)",
	"uk": "Українська (Ukrainian)",
	"vi": "Tiếng Việt (Vietnamese)",
	"id": "Bahasa Indonesia (Indonesian)",
	"fa": "فارسی (Persian)",
	"sv": "Svenska (Swedish)",
	"hu": "Magyar (Hungarian)",
	"fi": "Suomi (Finnish)",
	"da": "Dansk (Danish)",
	"no": "Norsk Bokmål (Norwegian)",
	"he": "עברית (Hebrew)",
	"th": "ไทย (Thai)",
	"hi": "हिन्दी (Hindi)",
	"bg": "Български (Bulgarian)",
	"el": "Ελληνικά (Greek)",
	"ro": "Română (Romanian)",
	"sk": "Slovenčina (Slovak)",
	"lt": "Lietuvių (Lithuanian)",
	"lv": "Latviešu (Latvian)",
	"et": "Eesti (Estonian)",
	"sr": "Српски (Serbian)",
	"hr": "Hrvatski (Croatian)",
	"sl": "Slovenščina (Slovenian)",
	"ca": "Català (Catalan)",
	"ms": "Bahasa Melayu (Malay)",
	"ur": "اردو (Urdu)",
}

var reverseTags map[string]string

func init() {
	reverseTags = make(map[string]string, len(localeTags))
	for code, tag := range localeTags {
		reverseTags[tag] = code
	}
}

// Lookup returns the locale tag for a client language code. The code must
// already be normalized (see Normalize).
func Lookup(code string) (string, bool) {
	tag, ok := localeTags[code]
	return tag, ok
}

// Reverse returns the client language code for a locale tag.
func Reverse(tag string) (string, bool) {
	code, ok := reverseTags[tag]
	return code, ok
}

// IsSupported reports whether a normalized client code is in the table.
func IsSupported(code string) bool {
	_, ok := localeTags[code]
	return ok
}

// DefaultTag returns the locale tag of the fallback language.
func DefaultTag() string {
	return localeTags[DefaultCode]
}

// Normalize canonicalizes a raw client code: trims whitespace, strips
// region and script subtags ("en-US", "zh_Hans" become "en", "zh") and
// maps deprecated codes to their modern equivalents. Codes that do not
// parse as BCP 47 are lowercased and returned as-is so the caller can
// still decide how to handle them.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return strings.ToLower(raw)
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return strings.ToLower(raw)
	}
	return base.String()
}

// SupportedCodes returns all supported client codes in sorted order.
func SupportedCodes() []string {
	codes := make([]string, 0, len(localeTags))
	for code := range localeTags {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Name returns the human-readable name for a language code, falling back
// to the code itself for unknown codes.
func Name(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
