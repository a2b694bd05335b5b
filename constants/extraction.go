package constants

// ExtractionMethod labels how the document text was obtained.
// Stable values (returned verbatim in the extraction_method field).
const (
	MethodPDFText  = "pdf-text"  // text layer read directly from the PDF
	MethodPDFOCR   = "pdf-ocr"   // rasterized pages run through tesseract
	MethodImageOCR = "image-ocr" // single image run through tesseract
	MethodNone     = "none"      // upstream extraction yielded no text
)

// DegradedSuffix is appended to the method label when table isolation
// found no header anchor and fell back to the full text.
const DegradedSuffix = "-degraded"

// DefaultConfidence is the fixed confidence score attached to every
// successful extraction. The rule-based pipeline has no per-field
// probability model, so the score is a constant service-level value.
const DefaultConfidence = 0.85

// ServiceName and ServiceVersion identify the service in /health responses.
const (
	ServiceName    = "order-extractor"
	ServiceVersion = "1.1.0"
)
