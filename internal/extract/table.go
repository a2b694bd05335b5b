package extract

import "regexp"

// tableHeaderRe matches the column-label line that opens the line-items
// table ("Poste Codet Désignation ... Quantité ... Prix ... Montant").
// Accented and OCR-mangled spellings both occur in practice.
var tableHeaderRe = regexp.MustCompile(`(?im)^.*d[ée]signation.*(?:quantit[ée]|qt[ée]?).*$`)

// endMarkerRes are the captions that can close the table. Partial matches
// of these appear mid-table as page-footer noise when the table spans
// pages, so the isolator keeps everything up to the FURTHEST occurrence.
var endMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+de\s+la\s+commande`),
	regexp.MustCompile(`(?i)montant\s+total\s+HT`),
	regexp.MustCompile(`(?i)votre\s+interlocuteur`),
	regexp.MustCompile(`(?i)conditions?\s+d['’]exp[ée]dition`),
	regexp.MustCompile(`(?im)^.*enedis.*page\s+\d+\s*(?:/|sur)\s*\d+.*$`),
}

// Scrub patterns for page-break noise that reappears mid-table.
var (
	pageFooterRe   = regexp.MustCompile(`(?im)^.*page\s+\d+\s*(?:/|sur)\s*\d+.*$`)
	separatorRunRe = regexp.MustCompile(`_{10,}`)
	blankRunRe     = regexp.MustCompile(`\n[ \t]*\n+`)
)

// IsolateTable trims full document text down to the region that plausibly
// contains the line-items table. The second return value is false when no
// header anchor was found; the text is then passed through unchanged so
// the caller can degrade instead of dropping the document.
func IsolateTable(text string) (string, bool) {
	anchor := tableHeaderRe.FindStringIndex(text)
	if anchor == nil {
		return text, false
	}

	// Everything before (and including) the header line is noise.
	region := text[anchor[1]:]

	// The table can span pages: earlier marker hits may be footer noise,
	// so only the furthest occurrence of any end marker truncates.
	end := -1
	for _, re := range endMarkerRes {
		for _, loc := range re.FindAllStringIndex(region, -1) {
			if loc[0] > end {
				end = loc[0]
			}
		}
	}
	if end >= 0 {
		region = region[:end]
	}

	return scrubTableNoise(region), true
}

// scrubTableNoise strips repeated table headers, page footers and long
// separator rules introduced by page breaks, then collapses blank runs.
func scrubTableNoise(region string) string {
	region = tableHeaderRe.ReplaceAllString(region, "")
	region = pageFooterRe.ReplaceAllString(region, "")
	region = separatorRunRe.ReplaceAllString(region, "")
	region = blankRunRe.ReplaceAllString(region, "\n")
	return region
}
