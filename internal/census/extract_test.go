package census

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExtract(t *testing.T, rows []string) string {
	t.Helper()
	header := []string{
		"ELSTAT 2021,,,,,,,,,,,,",
		"Census of dwellings,,,,,,,,,,,,",
		",,,,,,,,,,,,",
		"level,code,name,total,s_total,s_occupied,s_empty,for_rent,for_sale,vacation,secondary,other,non_normal",
		",,,,,,,,,,,,",
		",,,,,,,,,,,,",
	}
	path := filepath.Join(t.TempDir(), "extract.csv")
	content := strings.Join(append(header, rows...), "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExtract_SelectsLevelRows(t *testing.T) {
	path := writeExtract(t, []string{
		"3,100,ΠΕΡΙΦΕΡΕΙΑ ΑΤΤΙΚΗΣ,9000,8000,6000,2000,500,300,700,300,200,100",
		"5,9101,ΔΗΜΟΣ ΑΘΗΝΑΙΩΝ,4000,3500,2800,700,200,100,200,100,100,50",
		"5,9102,ΔΗΜΟΣ ΠΕΙΡΑΙΩΣ,2000,1800,1500,300,80,40,100,40,40,20",
	})

	records, malformed, err := LoadExtract(path, ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, malformed)
	require.Len(t, records, 2)
	assert.Equal(t, "ΑΘΗΝΑΙΩΝ", records[0].Name)
	assert.Equal(t, 3500, records[0].STotal)
	assert.Equal(t, 700, records[0].SEmpty)
	assert.Equal(t, 9102, records[1].Code)
}

func TestLoadExtract_CountsMalformedRows(t *testing.T) {
	path := writeExtract(t, []string{
		"5,9101,ΔΗΜΟΣ ΑΘΗΝΑΙΩΝ,4000,3500,2800,700,200,100,200,100,100,50",
		"5,9103,ΔΗΜΟΣ ΚΑΚΟΣ,4000,abc,2800,700,200,100,200,100,100,50",
		"5,9104,ΔΗΜΟΣ ΑΔΕΙΟΣ,0,0,0,0,0,0,0,0,0,0",
	})

	records, malformed, err := LoadExtract(path, ExtractOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, malformed)
}

func TestLoadExtract_NoLevelRowsIsFatal(t *testing.T) {
	path := writeExtract(t, []string{
		"3,100,ΠΕΡΙΦΕΡΕΙΑ,9000,8000,6000,2000,500,300,700,300,200,100",
	})

	_, _, err := LoadExtract(path, ExtractOptions{})
	assert.Error(t, err)
}

func TestLoadExtract_MissingFile(t *testing.T) {
	_, _, err := LoadExtract(filepath.Join(t.TempDir(), "nope.csv"), ExtractOptions{})
	assert.Error(t, err)
}

func TestLoadExtract_CustomLevel(t *testing.T) {
	path := writeExtract(t, []string{
		"3,100,ΠΕΡΙΦΕΡΕΙΑ ΑΤΤΙΚΗΣ,9000,8000,6000,2000,500,300,700,300,200,100",
		"5,9101,ΔΗΜΟΣ ΑΘΗΝΑΙΩΝ,4000,3500,2800,700,200,100,200,100,100,50",
	})

	records, _, err := LoadExtract(path, ExtractOptions{Level: 3})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ΠΕΡΙΦΕΡΕΙΑ ΑΤΤΙΚΗΣ", records[0].Name)
}
