package census

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/oikos-research/friction-cli/internal/model"
	"github.com/oikos-research/friction-cli/internal/resolve"
)

// National workbook markers. Header cells wrap across four rows, so column
// names are the concatenation of all four; matching is accent-insensitive.
const (
	headerMarker = "Γεωγραφικό επίπεδο"
	nationalRow  = "ΣΥΝΟΛΟ ΧΩΡΑΣ"
	headerRows   = 4
)

// LoadNationalWorkbook extracts the country-level dwelling totals from the
// agency's summary workbook and returns them as raw counts. The caller
// derives sigma and F from the totals.
func LoadNationalWorkbook(path string) (model.National, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return model.National{}, eris.Wrapf(err, "census: open workbook %s", path)
	}
	if len(f.Sheets) == 0 {
		return model.National{}, eris.Errorf("census: workbook %s has no sheets", path)
	}
	sheet := f.Sheets[0]

	rows := make([][]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows[i] = cells
	}

	headerStart := -1
	for i, row := range rows {
		if len(row) > 0 && greekEqual(row[0], headerMarker) {
			headerStart = i
			break
		}
	}
	if headerStart < 0 || headerStart+headerRows >= len(rows) {
		return model.National{}, eris.Errorf("census: header row %q not found in %s", headerMarker, path)
	}

	columns := stackedHeaders(rows[headerStart : headerStart+headerRows])

	descCol, err := findColumn(columns, []string{"περιγραφη"})
	if err != nil {
		// Agency layout puts the description third when the label changes.
		if len(columns) < 3 {
			return model.National{}, err
		}
		descCol = 2
	}
	totalCol, err := findColumnExcluding(columns, []string{"κανονικες", "κατοικιες", "συνολο"}, []string{"κενες"})
	if err != nil {
		totalCol, err = findColumnExcluding(columns, []string{"κανονικες", "συνολο"}, []string{"κενες"})
		if err != nil {
			return model.National{}, err
		}
	}
	emptyCol, err := findColumnExcluding(columns, []string{"κενες", "συνολο"}, nil)
	if err != nil {
		return model.National{}, err
	}

	for _, row := range rows[headerStart+headerRows:] {
		if len(row) <= maxInt(descCol, totalCol, emptyCol) {
			continue
		}
		if !greekEqual(row[descCol], nationalRow) {
			continue
		}
		total, err1 := parseCount(row[totalCol])
		empty, err2 := parseCount(row[emptyCol])
		if err1 != nil || err2 != nil || total <= 0 {
			return model.National{}, eris.Errorf("census: national row in %s has unusable totals (%q, %q)",
				path, row[totalCol], row[emptyCol])
		}
		return model.National{STotal: float64(total), SEmpty: float64(empty)}, nil
	}
	return model.National{}, eris.Errorf("census: national row %q not found in %s", nationalRow, path)
}

// stackedHeaders joins the wrapped header rows column-wise.
func stackedHeaders(headerRows [][]string) []string {
	width := 0
	for _, row := range headerRows {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := make([]string, width)
	for j := 0; j < width; j++ {
		var parts []string
		for _, row := range headerRows {
			if j < len(row) {
				if v := strings.TrimSpace(row[j]); v != "" {
					parts = append(parts, v)
				}
			}
		}
		columns[j] = strings.Join(parts, " ")
	}
	return columns
}

// findColumnExcluding is findColumn with a reject list.
func findColumnExcluding(header []string, tokens, exclude []string) (int, error) {
	for i, name := range header {
		normed := squash(resolve.NormalizeGreek(name))
		hit := true
		for _, tok := range tokens {
			if !strings.Contains(normed, squash(tok)) {
				hit = false
				break
			}
		}
		for _, tok := range exclude {
			if strings.Contains(normed, squash(tok)) {
				hit = false
				break
			}
		}
		if hit {
			return i, nil
		}
	}
	return 0, eris.Errorf("census: no column matching %v (excluding %v)", tokens, exclude)
}

func greekEqual(a, b string) bool {
	return squash(resolve.NormalizeGreek(a)) == squash(resolve.NormalizeGreek(b))
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(err, "census: parse count %q", s)
	}
	return v, nil
}
