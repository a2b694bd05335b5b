package extract

import (
	"testing"

	"github.com/enedis-automation/order-extractor/internal/rules"
)

func testRuleSet(t *testing.T, raw string) *rules.Set {
	t.Helper()
	set, err := rules.FromJSON([]byte(raw), nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	return set
}

func TestExtractGeneral(t *testing.T) {
	set := testRuleSet(t, `{
		"general_fields": [
			{"field_name": "reference", "patterns": ["commande\\s+n[°o]?\\s*(4\\d{9})"], "type": "string"},
			{"field_name": "total", "patterns": ["total\\s+HT\\s*:\\s*(\\d[\\d., ]*\\d)"], "type": "float"},
			{"field_name": "missing", "patterns": ["jamais\\s+present\\s+(\\w+)"], "type": "string"},
			{"field_name": "address", "patterns": ["adresse\\s*:\\s*(.+?)\\n\\n"], "type": "string", "multiline": true}
		]
	}`)

	text := "Commande n° 4801377867\n" +
		"Adresse : 12   rue de la Paix\n75002  Paris\n\n" +
		"Total HT : 15 000,00\n"

	got := ExtractGeneral(text, set, LocaleAuto, nil)

	if len(got) != 4 {
		t.Fatalf("expected 4 keys, got %d: %v", len(got), got)
	}
	if got["reference"] != "4801377867" {
		t.Errorf("reference = %v", got["reference"])
	}
	if got["total"] != 15000.0 {
		t.Errorf("total = %v", got["total"])
	}
	if got["missing"] != nil {
		t.Errorf("missing = %v, want nil", got["missing"])
	}
	if got["address"] != "12 rue de la Paix\n75002 Paris" {
		t.Errorf("address = %q", got["address"])
	}
}

func TestExtractGeneralFirstPatternWins(t *testing.T) {
	set := testRuleSet(t, `{
		"general_fields": [
			{"field_name": "ref", "patterns": ["ref\\s+A(\\d+)", "ref\\s+\\w(\\d+)"], "type": "string"}
		]
	}`)

	got := ExtractGeneral("ref B111 ref A222", set, LocaleAuto, nil)
	if got["ref"] != "222" {
		t.Errorf("ref = %v, want first-pattern match 222", got["ref"])
	}
}

func TestExtractGeneralFloatParseFailure(t *testing.T) {
	set := testRuleSet(t, `{
		"general_fields": [
			{"field_name": "amount", "patterns": ["montant\\s*:\\s*(\\S+)"], "type": "float"}
		]
	}`)

	got := ExtractGeneral("Montant : indisponible", set, LocaleAuto, nil)
	if got["amount"] != nil {
		t.Errorf("amount = %v, want nil for unparseable float", got["amount"])
	}
}

func TestExtractGeneralBadPatternFailsClosed(t *testing.T) {
	set := testRuleSet(t, `{
		"general_fields": [
			{"field_name": "broken", "patterns": ["(unclosed"], "type": "string"},
			{"field_name": "ok", "patterns": ["valeur\\s+(\\w+)"], "type": "string"}
		]
	}`)

	got := ExtractGeneral("valeur bonne", set, LocaleAuto, nil)
	if got["broken"] != nil {
		t.Errorf("broken = %v, want nil", got["broken"])
	}
	if got["ok"] != "bonne" {
		t.Errorf("ok = %v", got["ok"])
	}
}

func TestExtractGeneralEmptyRuleSet(t *testing.T) {
	got := ExtractGeneral("n'importe quoi", rules.Default(), LocaleAuto, nil)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
