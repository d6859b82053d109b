package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Tier status: 2024/05",
		Headers: []string{"Code", "Name", "Tier"},
		Rows: [][]string{
			{"2111", "Kim", "Tier 1"},
			{"2112", "Lee"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2112", "Lee", ""}, records[2])
}

func TestXLSXExporterWritesSheet(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	assert.Equal(t, "Tier status- 2024-05", sheet)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Name", "Tier"}, rows[0])
	assert.Equal(t, "Tier 1", rows[1][2])
}

func TestPDFExporterProducesDocument(t *testing.T) {
	data := sampleDataset()
	data.Sections = []Section{{Heading: "Notes", Body: "Follow up next week."}}
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderersRejectEmptyHeaders(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatXLSX, FormatPDF} {
		r, err := RendererFor(format)
		require.NoError(t, err)
		_, err = r.Render(Dataset{})
		assert.Error(t, err, format)
		assert.Equal(t, string(format), r.Extension())
	}
}

func TestRenderersRejectOverlongRows(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{Headers: []string{"a"}, Rows: [][]string{{"1", "2"}}})
	assert.Error(t, err)
}
