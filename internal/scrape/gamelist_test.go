package scrape

import (
	"strings"
	"testing"
)

const catalogPage = `<html><head>
<script>var x = 1;</script>
<script>
globalUserInfos = {"game_list":[
  {"id":5,"name":"chess","display_name_en":"Chess","status":"public","premium":false},
  {"id":9,"name":"carcassonne","display_name":"Carcassonne","status":"private","premium":true},
  {"id":12,"name":"","display_name_en":"Nameless","status":"published","premium":false}
],"game_tags":[{"id":1}]};
</script>
</head><body></body></html>`

func TestExtractCatalogJSON(t *testing.T) {
	doc, err := parseHTML(catalogPage)
	if err != nil {
		t.Fatalf("parseHTML() error = %v", err)
	}

	jsonStr, err := extractCatalogJSON(doc)
	if err != nil {
		t.Fatalf("extractCatalogJSON() error = %v", err)
	}

	if !strings.HasPrefix(jsonStr, "[") || !strings.HasSuffix(jsonStr, "]") {
		t.Errorf("extracted slice is not a JSON array: %q", jsonStr)
	}
	if !strings.Contains(jsonStr, `"carcassonne"`) {
		t.Errorf("extracted slice missing catalog entries: %q", jsonStr)
	}
}

func TestCatalogToPayload(t *testing.T) {
	doc, err := parseHTML(catalogPage)
	if err != nil {
		t.Fatalf("parseHTML() error = %v", err)
	}
	jsonStr, err := extractCatalogJSON(doc)
	if err != nil {
		t.Fatalf("extractCatalogJSON() error = %v", err)
	}

	payload, count, err := catalogToPayload(jsonStr)
	if err != nil {
		t.Fatalf("catalogToPayload() error = %v", err)
	}

	// The nameless entry is dropped; the rest map onto payload rows with
	// public -> published, private -> alpha, and premium as 0/1.
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	want := "5\tchess\tChess\tpublished\t0\n" +
		"9\tcarcassonne\tCarcassonne\talpha\t1"
	if payload != want {
		t.Errorf("payload = %q, want %q", payload, want)
	}
}

func TestCatalogToPayload_Empty(t *testing.T) {
	if _, _, err := catalogToPayload(`[]`); err == nil {
		t.Fatal("catalogToPayload() expected error for empty catalog")
	}
	if _, _, err := catalogToPayload(`[{"id":"","name":""}]`); err == nil {
		t.Fatal("catalogToPayload() expected error when no entry is usable")
	}
}

func TestExtractCatalogJSON_NotFound(t *testing.T) {
	doc, err := parseHTML(`<html><body><script>var y = 2;</script></body></html>`)
	if err != nil {
		t.Fatalf("parseHTML() error = %v", err)
	}

	if _, err := extractCatalogJSON(doc); err == nil {
		t.Fatal("extractCatalogJSON() expected error for page without catalog")
	}
}
