package collection

import "testing"

func TestKeyFor_PrefersScryfallID(t *testing.T) {
	t.Parallel()

	r := Record{Name: "Island", SetCode: "blb", CollectorNumber: "262", ScryfallID: "ABC-123"}
	k := KeyFor(r)
	if !k.ByID() {
		t.Fatalf("expected ID key, got %#v", k)
	}
	if k.String() != "id:abc-123" {
		t.Fatalf("unexpected key string: %q", k.String())
	}
}

func TestKeyFor_NormalizesNameKeys(t *testing.T) {
	t.Parallel()

	a := KeyFor(Record{Name: "  Swords  to Plowshares ", SetCode: "OTC", CollectorNumber: "112"})
	b := KeyFor(Record{Name: "swords to plowshares", SetCode: "otc", CollectorNumber: "112"})
	if a.String() != b.String() {
		t.Fatalf("normalization mismatch: %q vs %q", a.String(), b.String())
	}
	if a.String() != "name:swords to plowshares|otc|112" {
		t.Fatalf("unexpected key string: %q", a.String())
	}
}

func TestKeyFor_IgnoresNonIdentityFields(t *testing.T) {
	t.Parallel()

	// Two copies with different pass-through metadata still share a key.
	a := Record{Fields: []string{"Island", "foil"}, Name: "Island", SetCode: "blb"}
	b := Record{Fields: []string{"Island", "normal"}, Name: "Island", SetCode: "blb"}
	if KeyFor(a).String() != KeyFor(b).String() {
		t.Fatal("non-identity fields must not affect the lookup key")
	}
}

func TestDistinctKeys_FirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	col := &Collection{Records: []Record{
		{Name: "Island", SetCode: "blb"},
		{Name: "Swords to Plowshares", SetCode: "otc"},
		{Name: "Island", SetCode: "blb"},
	}}
	keys := col.DistinctKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(keys))
	}
	if keys[0].DisplayName != "Island" || keys[1].DisplayName != "Swords to Plowshares" {
		t.Fatalf("unexpected order: %#v", keys)
	}
}
