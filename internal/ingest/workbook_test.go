package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Jakarta"))
	require.NoError(t, f.SetSheetRow("Jakarta", "A1", &[]any{"Nama", "Jabatan", "GDP"}))
	require.NoError(t, f.SetSheetRow("Jakarta", "A2", &[]any{"Ani", "Staff", 130.5}))
	require.NoError(t, f.SetSheetRow("Jakarta", "A4", &[]any{"Budi", "Driver", "98"}))
	_, err := f.NewSheet("Bandung")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Bandung", "A1", &[]any{"Nama"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	wb, err := ReadWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)

	jkt := wb.Sheets[0]
	assert.Equal(t, "Jakarta", jkt.Name)
	assert.Equal(t, []string{"Nama", "Jabatan", "GDP"}, jkt.Header)
	require.Len(t, jkt.Rows, 2)
	assert.Equal(t, 2, jkt.Rows[0].Number)
	assert.Equal(t, "130.5", jkt.Rows[0].Cells[2])
	assert.Equal(t, 4, jkt.Rows[1].Number, "blank row 3 keeps its number")

	assert.Equal(t, "Bandung", wb.Sheets[1].Name)
	assert.Empty(t, wb.Sheets[1].Rows)
}

func TestReadWorkbook_NotASpreadsheet(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrWorkbookUnreadable)
}

func TestDetectVariant(t *testing.T) {
	std := &Workbook{Sheets: []Sheet{NewSheet("A", [][]string{{"UID", "GDP", "Cholesterol"}})}}
	assert.Equal(t, VariantStandard, DetectVariant(std))

	anthro := &Workbook{Sheets: []Sheet{
		NewSheet("A", [][]string{{"UID", "GDP"}}),
		NewSheet("B", [][]string{{"Nama", "Tinggi Badan"}}),
	}}
	assert.Equal(t, VariantAnthropometric, DetectVariant(anthro))
	assert.Equal(t, VariantStandard, VariantStandard.Resolve(anthro))
	assert.Equal(t, VariantAnthropometric, VariantAuto.Resolve(anthro))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantAuto, v)

	v, err = ParseVariant(" Anthropometric ")
	require.NoError(t, err)
	assert.Equal(t, VariantAnthropometric, v)

	_, err = ParseVariant("v3")
	assert.ErrorIs(t, err, ErrInvalidVariant)
}
