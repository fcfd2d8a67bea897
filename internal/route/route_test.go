package route

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Route
	}{
		{"empty", "", Route{Kind: KindCatalog, Page: 1}},
		{"root", "/", Route{Kind: KindCatalog, Page: 1}},
		{"page and query", "/?page=3&q=Char", Route{Kind: KindCatalog, Page: 3, Query: "char"}},
		{"page floor", "/?page=-2", Route{Kind: KindCatalog, Page: 1}},
		{"page garbage", "/?page=abc&q=x", Route{Kind: KindCatalog, Page: 1, Query: "x"}},
		{"item by name", "/item/Pikachu", Route{Kind: KindItem, Identifier: "pikachu"}},
		{"item by id", "item/25", Route{Kind: KindItem, Identifier: "25"}},
		{"item trailing slash", "/item/25/", Route{Kind: KindItem, Identifier: "25"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"/items", "/item/", "/item/a/b"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) returned nil error, want error", in)
		}
	}
}

func TestString(t *testing.T) {
	if got := Catalog(2, "char").String(); got != "/?page=2&q=char" {
		t.Fatalf("String = %q, want /?page=2&q=char", got)
	}
	if got := Catalog(0, "").String(); got != "/?page=1" {
		t.Fatalf("String = %q, want /?page=1", got)
	}
	if got := Item("mr-mime").String(); got != "/item/mr-mime" {
		t.Fatalf("String = %q, want /item/mr-mime", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, r := range []Route{Catalog(7, "saur"), Catalog(1, ""), Item("25")} {
		got, err := Parse(r.String())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", r.String(), err)
		}
		if got != r {
			t.Fatalf("round trip %q = %#v, want %#v", r.String(), got, r)
		}
	}
}
