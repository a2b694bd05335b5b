package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/enedis-automation/order-extractor/internal/rules"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
	blankLinesRe = regexp.MustCompile(`\n[ \t]*\n+`)
)

// ExtractGeneral applies the rule set's general field rules to the full
// document text. Every rule's field name appears in the result; a field
// with no matching pattern maps to nil. The function is pure over its
// inputs and never fails: a mismatch is a normal outcome, not an error.
func ExtractGeneral(text string, set *rules.Set, loc Locale, logger *slog.Logger) map[string]any {
	if logger == nil {
		logger = slog.Default()
	}

	out := make(map[string]any, len(set.GeneralFields))
	for i := range set.GeneralFields {
		f := &set.GeneralFields[i]
		out[f.FieldName] = nil

		for _, re := range f.Compiled() {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			captured := m[0]
			if len(m) > 1 {
				captured = m[1]
			}
			out[f.FieldName] = convertFieldValue(captured, f, loc)
			break
		}
		if out[f.FieldName] == nil {
			logger.Debug("extract.general.no_match", "field", f.FieldName)
		}
	}
	return out
}

func convertFieldValue(captured string, f *rules.GeneralField, loc Locale) any {
	v := strings.TrimSpace(captured)
	if f.Multiline {
		v = blankLinesRe.ReplaceAllString(v, "\n")
		v = multiSpaceRe.ReplaceAllString(v, " ")
	}
	if f.Type == rules.TypeFloat {
		n := ParseNumericLocale(v, loc)
		if n == nil {
			return nil
		}
		return *n
	}
	return v
}
