package extract

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

var (
	// quantity: a number immediately followed by a unit token.
	quantityRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:PC|UNITES|UNITE|U)\b`)

	// priceAnchorRe locates the caption that precedes the numeric price
	// sequence. \s+ tolerates the line breaks OCR and column wrapping
	// insert between the two words.
	priceAnchorRe = regexp.MustCompile(`(?i)prix\s+brut`)

	// priceCandidateRe matches the generic price-number shape: grouped
	// digits with optional thousands separators and an optional 1–2 digit
	// decimal remainder. Alternatives are ordered so grouped forms win
	// over a bare digit run at the same position.
	priceCandidateRe = regexp.MustCompile(
		`\d{1,3}(?:[ .,\x{00a0}\x{202f}]\d{3})*[.,]\d{1,2}` +
			`|\d{1,3}(?:[ .,\x{00a0}\x{202f}]\d{3})+` +
			`|\d+(?:[.,]\d{1,2})?`)

	currencySuffixRe = regexp.MustCompile(`^[ \t]*(?:€|EUR|HT)`)

	// contractNoteRe strips the contract-call boilerplate some orders
	// append to every line.
	contractNoteRe = regexp.MustCompile(`(?i)suivant\s+(?:votre\s+)?appel\s+sur\s+contrat[^\n]*`)

	innerSpaceRe = regexp.MustCompile(`\s+`)
)

// span is a half-open byte range of the raw block marked for removal.
type span struct{ start, end int }

// RecoverFields turns one raw item block into a LineItem. It always
// returns a definite value: missing evidence degrades to nil fields with
// the raw content kept as description, never to an error.
func RecoverFields(block ItemBlock, loc Locale, logger *slog.Logger) LineItem {
	if logger == nil {
		logger = slog.Default()
	}

	item := LineItem{
		Position:    block.Position,
		ItemCode:    block.ItemCode,
		Description: block.RawContent,
	}
	raw := block.RawContent
	if raw == "" {
		return item
	}

	var cuts []span

	// Quantity can sit anywhere in the block.
	if m := quantityRe.FindStringSubmatchIndex(raw); m != nil {
		item.Quantity = ParseNumericLocale(raw[m[2]:m[3]], loc)
		cuts = append(cuts, span{m[0], m[1]})
	}

	// Prices are never guessed without the anchor.
	anchor := priceAnchorRe.FindStringIndex(raw)
	if anchor == nil {
		logger.Warn("extract.item.no_price_anchor",
			"position", block.Position, "item_code", block.ItemCode)
	} else {
		cuts = append(cuts, span{anchor[0], anchor[1]})

		after := raw[anchor[1]:]
		var values []float64
		for _, m := range priceCandidateRe.FindAllStringIndex(after, -1) {
			v := ParseNumericLocale(after[m[0]:m[1]], loc)
			if v == nil {
				continue
			}
			values = append(values, *v)

			end := anchor[1] + m[1]
			if sfx := currencySuffixRe.FindStringIndex(raw[end:]); sfx != nil {
				end += sfx[1]
			}
			cuts = append(cuts, span{anchor[1] + m[0], end})
		}
		item.UnitPrice, item.TotalPrice = assignPrices(values, item.Quantity)
	}

	item.Description = cleanDescription(raw, cuts)
	return item
}

// assignPrices maps the ordered price candidates onto the trailing table
// columns (unit price, then total). With a single candidate it is the line
// total; it doubles as the unit price only when the line is a single unit.
func assignPrices(values []float64, quantity *float64) (unitPrice, totalPrice *float64) {
	cols := assignRightmost(values, 2)
	unitPrice, totalPrice = cols[0], cols[1]
	if len(values) == 1 && quantity != nil && *quantity == 1.0 {
		unitPrice = totalPrice
	}
	return unitPrice, totalPrice
}

// assignRightmost assigns the last len(columns) observed values to the
// last expected columns in positional order: the rightmost value fills the
// rightmost column. Columns with no value stay nil. Kept as a standalone
// policy function so a different column count is a one-line change.
func assignRightmost(values []float64, columns int) []*float64 {
	out := make([]*float64, columns)
	for i := 0; i < columns && i < len(values); i++ {
		v := values[len(values)-1-i]
		out[columns-1-i] = &v
	}
	return out
}

// cleanDescription excises every recognized token span from the raw block
// and normalizes what remains. The document has no stable column
// delimiters, so subtracting recognized tokens from the whole block is the
// only robust way to recover free-form multi-line descriptions.
func cleanDescription(raw string, cuts []span) string {
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	var b strings.Builder
	pos := 0
	for _, c := range cuts {
		if c.start > pos {
			b.WriteString(raw[pos:c.start])
			b.WriteByte(' ')
		}
		if c.end > pos {
			pos = c.end
		}
	}
	if pos < len(raw) {
		b.WriteString(raw[pos:])
	}

	desc := b.String()
	desc = contractNoteRe.ReplaceAllString(desc, "")
	desc = separatorRunRe.ReplaceAllString(desc, "")
	desc = innerSpaceRe.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}
