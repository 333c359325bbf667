package census

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/resolve"
)

// Population column headers are located by token rather than position: the
// agency wraps and hyphenates header text between exports.
var (
	popLevelTokens = []string{"επιπεδο"}
	popNameTokens  = []string{"περιγραφη"}
	popCountTokens = []string{"πληθυσμος"}
)

// LoadPopulation reads the per-municipality population dataset and returns a
// map keyed by the accent-stripped Greek name. This join never goes through
// the Latin transliteration table.
func LoadPopulation(path string, level int) (map[string]int, error) {
	if level == 0 {
		level = 5
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "census: open population %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "census: read population header %s", path)
	}

	levelCol, err := findColumn(header, popLevelTokens)
	if err != nil {
		return nil, err
	}
	nameCol, err := findColumn(header, popNameTokens)
	if err != nil {
		return nil, err
	}
	countCol, err := findColumn(header, popCountTokens)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "census: read population row")
		}
		if len(row) <= maxInt(levelCol, nameCol, countCol) {
			continue
		}
		if strings.TrimSpace(row[levelCol]) != strconv.Itoa(level) {
			continue
		}
		pop, err := strconv.Atoi(strings.TrimSpace(row[countCol]))
		if err != nil {
			continue
		}
		name := strings.TrimPrefix(strings.TrimSpace(row[nameCol]), namePrefix)
		key := resolve.NormalizeGreek(name)
		if key == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = pop
		}
	}
	if len(out) == 0 {
		return nil, eris.Errorf("census: no level-%d population rows in %s", level, path)
	}
	return out, nil
}

// findColumn locates the first header whose accent-stripped form contains all
// tokens. A missing column is a fatal input error named after its tokens.
func findColumn(header []string, tokens []string) (int, error) {
	for i, name := range header {
		normed := squash(resolve.NormalizeGreek(name))
		hit := true
		for _, tok := range tokens {
			if !strings.Contains(normed, squash(tok)) {
				hit = false
				break
			}
		}
		if hit {
			return i, nil
		}
	}
	return 0, eris.Errorf("census: no column matching %v in header %v", tokens, header)
}

// squash removes whitespace and hyphens left inside wrapped header text.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '-' || r == '\n' {
			return -1
		}
		return r
	}, s)
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
