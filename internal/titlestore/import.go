package titlestore

import (
	"context"
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/gertd/go-pluralize"

	"atsblitz/internal/errors"
	"atsblitz/internal/types"
)

// Occupation catalogues pad titles with qualifier suffixes that users never
// type. Stripped before standardization.
var qualifierSuffixes = []string{
	", Except Gambling",
	", All Other",
	", Preschool and Daycare",
}

var (
	pluralizer  = pluralize.NewClient()
	socCodeRe   = regexp.MustCompile(`^\d{2}-\d{4}(?:\.\d{2})?$`)
	multiSpaces = regexp.MustCompile(`\s{2,}`)
)

// CleanTitle converts a catalogue occupation title into the standardized
// display form: qualifier suffixes removed, "and" shortened to "&", the
// last word singularized ("Sales Managers" -> "Sales Manager").
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	for _, suffix := range qualifierSuffixes {
		title = strings.TrimSuffix(title, suffix)
	}

	title = strings.ReplaceAll(title, " and ", " & ")
	title = multiSpaces.ReplaceAllString(title, " ")

	words := strings.Fields(title)
	if len(words) > 0 {
		last := words[len(words)-1]
		words[len(words)-1] = pluralizer.Singular(last)
		title = strings.Join(words, " ")
	}
	return title
}

// ImportResult summarizes a catalogue import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportCSV loads an occupation catalogue from CSV. Expected columns are
// code then title; a header row and rows whose code is not an SOC code
// (NN-NNNN with an optional .NN detail suffix) are skipped.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.NewIOError(errors.ErrCodeInvalidFormat, "Failed to parse catalogue CSV", err)
		}
		if len(record) < 2 {
			result.Skipped++
			continue
		}

		code := strings.TrimSpace(record[0])
		title := strings.TrimSpace(record[1])
		if !socCodeRe.MatchString(code) || title == "" {
			result.Skipped++
			continue
		}

		err = s.Upsert(ctx, types.StandardizedTitle{
			OriginalCode:      code,
			OriginalTitle:     title,
			StandardizedTitle: CleanTitle(title),
		})
		if err != nil {
			return result, err
		}
		result.Imported++
	}
	return result, nil
}
