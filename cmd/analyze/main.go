// Command analyze runs the arrival analysis against a saved bulletin file,
// useful for checking how a particular discussion would be interpreted
// without touching Kafka or the stores.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

func main() {
	file := flag.String("file", "", "bulletin text file (default: stdin)")
	date := flag.String("date", "", "analyze as of this date, YYYY-MM-DD (default: today)")
	flag.Parse()

	if err := run(*file, *date); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(file, date string) error {
	bulletin, err := readBulletin(file)
	if err != nil {
		return err
	}

	if date != "" {
		at, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", date, err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	var outcomes []domain.Outcome
	section, err := domain.ExtractSpecialFeatures(bulletin)
	switch {
	case errors.Is(err, domain.ErrSectionNotFound):
		fmt.Println("no special features section found")
		outcomes = domain.NoThreatOutcomes()
	case err != nil:
		return err
	default:
		outcomes = domain.AnalyzeSection(section, domain.Today())
	}

	for _, o := range outcomes {
		if !o.Notify() {
			fmt.Printf("%s: no current threat\n", o.Location.Name)
			continue
		}
		fmt.Printf("%s: %d days till arrival\n", o.Location.Name, *o.Days)
		fmt.Printf("  %s\n", o.Excerpt)
	}

	fmt.Println()
	fmt.Println(domain.Summary(outcomes))
	return nil
}

func readBulletin(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(data), nil
}
