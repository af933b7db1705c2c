package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// CLI для проверки сериализованной корзины (содержимое слота или выгрузка нескольких слотов).
// Валидные корзины печатаются в stdout, отчёт и ошибки — в stderr.
func main() {
	inputPath := flag.String("in", validate.StdinPath, `cart file (.json) or cart stream (.jsonl); "-" reads stdin`)
	formatStr := flag.String("format", string(validate.FormatAuto), "input format: auto|json|jsonl")
	quiet := flag.Bool("q", false, "do not print per-line issues")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := validate.ValidateFile(ctx, validate.NewCartValidator(), *inputPath, validate.InputFormat(*formatStr), os.Stdout)
	if !*quiet {
		for _, issue := range rep.Issues {
			fmt.Fprintln(os.Stderr, issue)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, rep.Summary())
		stop()
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", rep.Summary())
	if rep.Invalid > 0 {
		stop()
		os.Exit(2)
	}
}
