package format

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/gvexport/pkg/errors"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 60 {
		t.Fatalf("All() returned %d formats, want 60", len(all))
	}

	seen := make(map[Format]bool, len(all))
	for i, f := range all {
		if int(f) != i {
			t.Errorf("All()[%d] = %d, want declaration order", i, f)
		}
		if seen[f] {
			t.Errorf("All() returned %s twice", f)
		}
		seen[f] = true
	}

	// Callers get their own copy.
	all[0] = X11
	if All()[0] != Fig {
		t.Error("All() shares its backing array between calls")
	}
}

func TestOrdinalsAreStable(t *testing.T) {
	tests := []struct {
		f    Format
		want int
	}{
		{Fig, 0},
		{PlainText, 12},
		{Svg, 16},
		{Vtx, 19},
		{Wbmp, 20},
		{Canon, 22},
		{Xdot14, 26},
		{DotJson, 41},
		{PlainExt, 47},
		{X11, 59},
	}
	for _, tt := range tests {
		if int(tt.f) != tt.want {
			t.Errorf("%s = %d, want %d", tt.f, int(tt.f), tt.want)
		}
	}
}

func TestCatalogTablesComplete(t *testing.T) {
	names := make(map[string]Format)
	for _, f := range All() {
		name := f.String()
		if name == "" {
			t.Errorf("format %d has no name", int(f))
		}
		if prev, ok := names[name]; ok {
			t.Errorf("name %q used by %d and %d", name, int(prev), int(f))
		}
		names[name] = f

		if f.Description() == "" {
			t.Errorf("%s has no description", f)
		}
	}
}

func TestJPEGDescriptions(t *testing.T) {
	for _, f := range []Format{Jpeg, Jpg, Jpe} {
		d, err := Describe(f)
		if err != nil {
			t.Fatalf("Describe(%s) error = %v", f, err)
		}
		if d == "" {
			t.Errorf("Describe(%s) returned empty description", f)
		}
	}
}

func TestSharedDescriptions(t *testing.T) {
	for _, f := range []Format{Canon, Gv, Xdot, Xdot12, Xdot14} {
		if got := f.Description(); got != "DOT Format" {
			t.Errorf("%s.Description() = %q, want %q", f, got, "DOT Format")
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		want bool
	}{
		{"first", Fig, true},
		{"last", X11, true},
		{"negative", Format(-1), false},
		{"past end", Format(60), false},
		{"sentinel", numFormats, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Valid(); got != tt.want {
				t.Errorf("Format(%d).Valid() = %v, want %v", int(tt.f), got, tt.want)
			}
		})
	}
}

func TestDescribeInvalid(t *testing.T) {
	_, err := Describe(Format(99))
	if !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Errorf("Describe(99) error = %v, want %s", err, errors.ErrCodeInvalidVariant)
	}
}

func TestDescriptionPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Description() on an invalid format did not panic")
		}
	}()
	_ = Format(-3).Description()
}

func TestString(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{Svg, "svg"},
		{PlainText, "plaintext"},
		{ImapNp, "imap_np"},
		{PlainExt, "plain-ext"},
		{Xdot14, "xdot14"},
		{Format(77), "Format(77)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"lowercase", "png", Png, false},
		{"uppercase", "PDF", Pdf, false},
		{"padded", "  svgz ", Svgz, false},
		{"underscore", "cmapx_np", CmapxNp, false},
		{"hyphen", "plain-ext", PlainExt, false},
		{"catalog name not token", "xdot12", Xdot12, false},

		{"token is not a name", "xdot1.2", 0, true},
		{"empty", "", 0, true},
		{"unknown", "docx", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidVariant) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidVariant)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRoundTripsEveryName(t *testing.T) {
	for _, f := range All() {
		got, err := Parse(f.String())
		if err != nil || got != f {
			t.Errorf("Parse(%q) = %s, %v", f.String(), got, err)
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	type payload struct {
		Format Format `json:"format"`
	}

	data, err := json.Marshal(payload{Format: DotJson})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"format":"dot_json"}` {
		t.Errorf("Marshal = %s", data)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"format":"XDOT14"}`), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if p.Format != Xdot14 {
		t.Errorf("Unmarshal format = %s, want xdot14", p.Format)
	}

	if err := json.Unmarshal([]byte(`{"format":"nope"}`), &p); err == nil {
		t.Error("Unmarshal accepted an unknown format")
	}

	if _, err := Format(-1).MarshalText(); err == nil {
		t.Error("MarshalText accepted an invalid format")
	}
}
