// Package extract implements the order-form extraction pipeline: locating
// the line-items table inside noisy page text, splitting it into per-item
// blocks and recovering quantities, prices and descriptions from each block.
package extract

// ItemBlock is the raw text segment belonging to one line item, produced by
// the splitter and consumed by field recovery.
type ItemBlock struct {
	Position   string // 5-digit position code
	ItemCode   string // 7-or-8-digit item code
	RawContent string
}

// LineItem is one recovered order line. The JSON keys are the historical
// field names of the downstream consumer, typo included.
type LineItem struct {
	Position    string   `json:"CMDCodetPosition"`
	ItemCode    string   `json:"CMDCodet"`
	Description string   `json:"CMDCodetNom"`
	Quantity    *float64 `json:"CMDCodetQuantity"`
	UnitPrice   *float64 `json:"CMDCodetUnitPrice"`
	TotalPrice  *float64 `json:"CMDCodetTotlaLinePrice"`
}

// Result is the assembled extraction output for one document. It is built
// once per request and serializes directly to the wire contract.
type Result struct {
	Reference        *string    `json:"CMDRefEnedis"`
	OrderDate        *string    `json:"CMDDateCommande"`
	TotalHT          *float64   `json:"TotalHT"`
	LineItems        []LineItem `json:"line_items"`
	Confidence       float64    `json:"confidence_score"`
	ExtractedFrom    string     `json:"extracted_from"`
	ExtractionMethod string     `json:"extraction_method"`
}
