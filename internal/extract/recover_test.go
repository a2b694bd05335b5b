package extract

import (
	"strings"
	"testing"
)

func recoverBlock(content string) LineItem {
	return RecoverFields(ItemBlock{
		Position:   "00010",
		ItemCode:   "7395078",
		RawContent: content,
	}, LocaleAuto, nil)
}

func floatEq(p *float64, want float64) bool {
	return p != nil && *p == want
}

func TestRecoverFieldsFull(t *testing.T) {
	item := recoverBlock("Tableau monobloc extensible Prix brut\n2 PC\n100,00 EUR\n200,00 EUR")

	if !floatEq(item.Quantity, 2) {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
	if !floatEq(item.UnitPrice, 100) {
		t.Errorf("unit price = %v, want 100", item.UnitPrice)
	}
	if !floatEq(item.TotalPrice, 200) {
		t.Errorf("total price = %v, want 200", item.TotalPrice)
	}
	if item.Description != "Tableau monobloc extensible" {
		t.Errorf("description = %q", item.Description)
	}
}

func TestRecoverFieldsSingleCandidateUnitQuantity(t *testing.T) {
	item := recoverBlock("TR 400 C 20 KV PR S27\n1 PC Prix brut 5.000,00 EUR")

	if !floatEq(item.Quantity, 1) {
		t.Errorf("quantity = %v, want 1", item.Quantity)
	}
	if !floatEq(item.TotalPrice, 5000) {
		t.Errorf("total price = %v, want 5000", item.TotalPrice)
	}
	// Single unit: the lone candidate is both the line total and the
	// unit price.
	if !floatEq(item.UnitPrice, 5000) {
		t.Errorf("unit price = %v, want 5000", item.UnitPrice)
	}
}

func TestRecoverFieldsSingleCandidateMultiQuantity(t *testing.T) {
	item := recoverBlock("Câble HTA\n3 PC Prix brut 900,00 EUR")

	if !floatEq(item.Quantity, 3) {
		t.Errorf("quantity = %v, want 3", item.Quantity)
	}
	if !floatEq(item.TotalPrice, 900) {
		t.Errorf("total price = %v, want 900", item.TotalPrice)
	}
	if item.UnitPrice != nil {
		t.Errorf("unit price = %v, want nil without a quantity of 1", *item.UnitPrice)
	}
}

func TestRecoverFieldsNoAnchor(t *testing.T) {
	item := recoverBlock("Poste sans prix 2 PC 100,00 EUR")

	if item.Position != "00010" || item.ItemCode != "7395078" {
		t.Fatalf("position/item code must survive: %q %q", item.Position, item.ItemCode)
	}
	if item.UnitPrice != nil || item.TotalPrice != nil {
		t.Errorf("prices must never be guessed without the anchor: %v %v", item.UnitPrice, item.TotalPrice)
	}
	if !floatEq(item.Quantity, 2) {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
}

func TestRecoverFieldsNoEvidence(t *testing.T) {
	item := recoverBlock("Désignation pure sans aucun nombre utile")

	if item.Quantity != nil || item.UnitPrice != nil || item.TotalPrice != nil {
		t.Errorf("expected all-nil numeric fields: %+v", item)
	}
	if item.Description != "Désignation pure sans aucun nombre utile" {
		t.Errorf("description = %q", item.Description)
	}
}

func TestRecoverFieldsEmptyBlock(t *testing.T) {
	item := recoverBlock("")
	if item.Description != "" || item.Quantity != nil {
		t.Errorf("empty block must yield an empty item, got %+v", item)
	}
}

func TestRecoverFieldsAnchorAcrossNewline(t *testing.T) {
	item := recoverBlock("Poste\nPrix\nbrut\n10,00 EUR 20,00 EUR")
	if !floatEq(item.UnitPrice, 10) || !floatEq(item.TotalPrice, 20) {
		t.Errorf("anchor split across lines must still be found: %v %v", item.UnitPrice, item.TotalPrice)
	}
}

func TestRecoverFieldsUnitTokens(t *testing.T) {
	for _, tt := range []struct {
		content string
		want    float64
	}{
		{"x Prix brut 1,00", 0}, // no quantity at all
		{"4 PC x Prix brut 1,00", 4},
		{"2 U x Prix brut 1,00", 2},
		{"5 UNITE x Prix brut 1,00", 5},
		{"6 UNITES x Prix brut 1,00", 6},
		{"7 pc x Prix brut 1,00", 7}, // case-insensitive
	} {
		item := recoverBlock(tt.content)
		if tt.want == 0 {
			if item.Quantity != nil {
				t.Errorf("%q: quantity = %v, want nil", tt.content, *item.Quantity)
			}
			continue
		}
		if !floatEq(item.Quantity, tt.want) {
			t.Errorf("%q: quantity = %v, want %v", tt.content, item.Quantity, tt.want)
		}
	}
}

func TestRecoverFieldsDescriptionCleanup(t *testing.T) {
	item := recoverBlock("Tableau monobloc extensible\n" +
		"Suivant votre appel sur contrat 4600012345\n" +
		"______________\n" +
		"1 PC Prix brut\n10.000,00 EUR\n10.000,00 EUR")

	if item.Description != "Tableau monobloc extensible" {
		t.Errorf("description = %q", item.Description)
	}
	for _, forbidden := range []string{"Prix brut", "10.000,00", "EUR", "contrat", "_"} {
		if strings.Contains(item.Description, forbidden) {
			t.Errorf("description still contains %q: %q", forbidden, item.Description)
		}
	}
}

func TestAssignRightmost(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		columns int
		want    []*float64
	}{
		{name: "two of two", values: []float64{100, 200}, columns: 2, want: ptrs(100, 200)},
		{name: "extra values keep last two", values: []float64{1, 100, 200}, columns: 2, want: ptrs(100, 200)},
		{name: "one of two fills rightmost", values: []float64{300}, columns: 2, want: []*float64{nil, ptr(300)}},
		{name: "none", values: nil, columns: 2, want: []*float64{nil, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignRightmost(tt.values, tt.columns)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				switch {
				case tt.want[i] == nil && got[i] != nil:
					t.Errorf("col %d = %v, want nil", i, *got[i])
				case tt.want[i] != nil && (got[i] == nil || *got[i] != *tt.want[i]):
					t.Errorf("col %d = %v, want %v", i, got[i], *tt.want[i])
				}
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func ptrs(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}
