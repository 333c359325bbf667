// Package census parses the statistical-agency inputs: the dwelling-occupancy
// extract, the national summary workbook, and the population dataset.
package census

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/model"
)

// namePrefix is the administrative-type prefix the agency puts before every
// municipality name.
const namePrefix = "ΔΗΜΟΣ "

// ExtractOptions configures the occupancy extract parser.
type ExtractOptions struct {
	SkipRows int // leading header rows before data (default 6)
	Level    int // administrative tier to select (default 5, municipalities)
}

// Extract column layout, fixed by the agency export.
const (
	colLevel = iota
	colCode
	colName
	colTotalAll
	colSTotal
	colSOccupied
	colSEmpty
	colForRent
	colForSale
	colVacation
	colSecondary
	colOtherReason
	extractMinCols = colOtherReason + 1
)

// LoadExtract reads the occupancy extract and returns one record per
// administrative unit at the requested level, plus the count of rows at that
// level that were excluded for failed numeric coercion or non-positive
// s_total. Exclusions are recoverable; they are counted so the run report can
// surface them.
func LoadExtract(path string, opts ExtractOptions) ([]model.Municipality, int, error) {
	if opts.SkipRows == 0 {
		opts.SkipRows = 6
	}
	if opts.Level == 0 {
		opts.Level = 5
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "census: open extract %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records   []model.Municipality
		malformed int
		rowNum    int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, eris.Wrapf(err, "census: read extract row %d", rowNum)
		}
		rowNum++
		if rowNum <= opts.SkipRows {
			continue
		}
		if len(row) < extractMinCols {
			continue
		}

		level, err := strconv.Atoi(strings.TrimSpace(row[colLevel]))
		if err != nil || level != opts.Level {
			continue
		}

		rec, ok := parseExtractRow(row)
		if !ok {
			malformed++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, malformed, eris.Errorf("census: no level-%d rows in %s", opts.Level, path)
	}
	if malformed > 0 {
		zap.L().Warn("census: excluded malformed extract rows",
			zap.String("path", path),
			zap.Int("excluded", malformed),
		)
	}
	return records, malformed, nil
}

func parseExtractRow(row []string) (model.Municipality, bool) {
	num := func(i int) (int, bool) {
		v, err := strconv.Atoi(strings.TrimSpace(row[i]))
		return v, err == nil
	}

	rec := model.Municipality{
		Name: strings.TrimPrefix(strings.TrimSpace(row[colName]), namePrefix),
	}
	fields := []struct {
		col int
		dst *int
	}{
		{colCode, &rec.Code},
		{colSTotal, &rec.STotal},
		{colSOccupied, &rec.SOccupied},
		{colSEmpty, &rec.SEmpty},
		{colForRent, &rec.ForRent},
		{colForSale, &rec.ForSale},
		{colVacation, &rec.Vacation},
		{colSecondary, &rec.Secondary},
		{colOtherReason, &rec.OtherReason},
	}
	for _, fld := range fields {
		v, ok := num(fld.col)
		if !ok {
			return model.Municipality{}, false
		}
		*fld.dst = v
	}
	if rec.STotal <= 0 {
		return model.Municipality{}, false
	}
	return rec, true
}
