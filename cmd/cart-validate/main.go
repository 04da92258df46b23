package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/storefront-cart/pkg/validate"
)

// CLI для проверки выгрузок слотов корзин: один JSON-массив (.json)
// или по массиву на строку (.jsonl). Валидные слоты пишутся в stdout.
func main() {
	inputPath := flag.String("in", "", "path to slot dump (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	cartValidator := validate.NewCartValidator()

	format := validate.InputFormat(*formatStr)
	path := *inputPath
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, cartValidator, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
