package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

func TestValidateJSONLStream_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewCartValidator()

	line1 := oneLineJSONL(validCartJSON)
	line2 := `[{"id":"p1","quantity":5,"stock":2}]` // quantity > stock
	line3 := ""                                     // пустая строка — ок
	line4 := `[]`

	input := strings.Join([]string{line1, line2, line3, line4}, "\n")
	var out bytes.Buffer

	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	var c1, c2 domain.Cart
	if err := json.Unmarshal([]byte(outLines[0]), &c1); err != nil {
		t.Fatalf("unmarshal line1: %v", err)
	}
	if err := json.Unmarshal([]byte(outLines[1]), &c2); err != nil {
		t.Fatalf("unmarshal line2: %v", err)
	}
	if len(c1) != 2 || len(c2) != 0 {
		t.Fatalf("unexpected carts: %+v / %+v", c1, c2)
	}
	if outLines[1] != "[]" {
		t.Fatalf("empty cart must be written as [], got %s", outLines[1])
	}
}

func TestValidateJSONLStream_LargeLine(t *testing.T) {
	ctx := context.Background()
	validator := NewCartValidator()

	bigName := strings.Repeat("X", 200_000) // > 64KB
	raw := `[{"id":"p-big","name":"` + bigName + `","price":1,"quantity":1,"image":"","stock":1}]`

	var out bytes.Buffer
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(raw+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 || res.InvalidLinesCount != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if strings.Count(strings.TrimSpace(out.String()), "\n")+1 != 1 {
		t.Fatalf("expected 1 output line")
	}
}

// ------ функции-помощники ------

func oneLineJSONL(s string) string {
	var b bytes.Buffer
	_ = json.Compact(&b, []byte(s))
	return b.String()
}
