package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2 primary
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
	{"cs", "ces", "cze", "Czech"},
	{"hu", "hun", "", "Hungarian"},
	{"th", "tha", "", "Thai"},
}

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		byCode[e.code2] = e
		byCode[e.code3] = e
		if e.alt3 != "" {
			byCode[e.alt3] = e
		}
	}
}

var titleCaser = cases.Title(xlanguage.Und)

// Normalize lowercases and trims a raw tag value the way the catalog stores
// language fields.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// DisplayName returns a human-readable name for a language tag. Unrecognized
// codes are title-cased as-is; empty input renders as "Unknown".
func DisplayName(code string) string {
	code = Normalize(code)
	if code == "" {
		return "Unknown"
	}
	if e, ok := byCode[code]; ok {
		return e.display
	}
	return titleCaser.String(code)
}

// ExtractFromTags extracts and normalizes the language from stream metadata
// tags, checking the tag key spellings seen in the wild.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
