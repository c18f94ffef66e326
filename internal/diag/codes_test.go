package diag

import "testing"

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{UnknownCode, "UNK000"},
		{StrUnterminatedBlock, "STR001"},
		{UniContentType, "UNI100"},
		{UniResourcesRole, "UNI107"},
		{AsmTopConditional, "ASM200"},
		{CnrInstructional, "CNR300"},
		{PrcTrailingContent, "PRC405"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	for _, m := range Catalogue() {
		code, ok := ParseID(m.Code.ID())
		if !ok {
			t.Errorf("ParseID(%q) failed", m.Code.ID())
			continue
		}
		if code != m.Code {
			t.Errorf("ParseID(%q) = %d, want %d", m.Code.ID(), code, m.Code)
		}
	}

	if _, ok := ParseID("XYZ999"); ok {
		t.Error("ParseID should reject unknown identifiers")
	}
}

func TestCatalogueSortedAndComplete(t *testing.T) {
	cat := Catalogue()
	if len(cat) == 0 {
		t.Fatal("catalogue is empty")
	}
	for i := 1; i < len(cat); i++ {
		if cat[i-1].Code >= cat[i].Code {
			t.Errorf("catalogue not in ascending order at %d: %s >= %s",
				i, cat[i-1].Code, cat[i].Code)
		}
	}
	for _, m := range cat {
		if m.Summary == "" {
			t.Errorf("%s has no summary", m.Code)
		}
	}
}
