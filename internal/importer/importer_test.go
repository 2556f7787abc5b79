package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "id,material,width,height\na,MDF,100,200\n", ','},
		{"semicolon", "id;material;width;height\na;MDF;100;200\n", ';'},
		{"tab", "id\tmaterial\twidth\theight\na\tMDF\t100\t200\n", '\t'},
		{"pipe", "id|material|width|height\na|MDF|100|200\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ID", "Material", "Width", "Height", "Quantity", "Grain"})

	assert.True(t, isHeader)
	assert.Equal(t, 0, mapping.ID)
	assert.Equal(t, 1, mapping.Material)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Height)
	assert.Equal(t, 4, mapping.Quantity)
	assert.Equal(t, 5, mapping.Grain)
}

func TestDetectColumns_AliasesAndReorder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"W", "H", "Qty", "Name", "Stock", "Orientation"})

	assert.True(t, isHeader)
	assert.Equal(t, 0, mapping.Width)
	assert.Equal(t, 1, mapping.Height)
	assert.Equal(t, 2, mapping.Quantity)
	assert.Equal(t, 3, mapping.ID)
	assert.Equal(t, 4, mapping.Material)
	assert.Equal(t, 5, mapping.Grain)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"shelf", "MDF", "600", "300", "2", "any"})

	assert.False(t, isHeader)
	// Positional fallback
	assert.Equal(t, 0, mapping.ID)
	assert.Equal(t, 1, mapping.Material)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Height)
}

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := `id,material,width,height,quantity,grain
side,MDF,600,400,2,fixed
shelf,MDF,500,300,1,any
`
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)

	assert.Equal(t, "side", result.Parts[0].ID)
	assert.Equal(t, "MDF", result.Parts[0].Material)
	assert.Equal(t, 600.0, result.Parts[0].Width)
	assert.Equal(t, 400.0, result.Parts[0].Height)
	assert.Equal(t, 2, result.Parts[0].Quantity)
	assert.Equal(t, "fixed", result.Parts[0].GrainDirection)

	assert.Equal(t, "any", result.Parts[1].GrainDirection)
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "side,MDF,600,400,2\nshelf,Oak,500,300,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
	assert.Equal(t, "Oak", result.Parts[1].Material)
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	data := "id,width,height\na,100,200\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 1)
	assert.Equal(t, 1, result.Parts[0].Quantity)
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	data := `id,width,height,quantity
good,100,200,1
badwidth,abc,200,1
badqty,100,200,x
negative,-5,200,1
`
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	assert.Len(t, result.Parts, 1)
	assert.Len(t, result.Errors, 3)
}

func TestImportCSVFromReader_EmptyRowsSkipped(t *testing.T) {
	data := "id,width,height\na,100,200\n,,\nb,50,60\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	assert.Len(t, result.Parts, 2)
}

func TestImportCSVFromReader_GeneratedIDs(t *testing.T) {
	data := "id,width,height\n,100,200\n,50,60\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 2)
	assert.Equal(t, "part-1", result.Parts[0].ID)
	assert.Equal(t, "part-2", result.Parts[1].ID)
}

func TestImportCSVFromReader_UnknownGrainWarns(t *testing.T) {
	data := "id,width,height,grain\na,100,200,diagonal\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 1)
	assert.Equal(t, "diagonal", result.Parts[0].GrainDirection)
	assert.NotEmpty(t, result.Warnings)
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	data := "id,width,quantity\na,100,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "height")
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	data := "id;material;width;height;quantity\nside;MDF;600;400;2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 1)
	assert.Equal(t, "side", result.Parts[0].ID)
	// Semicolon detection is surfaced as a warning
	assert.Contains(t, result.Warnings[0], "semicolon")
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.NotEmpty(t, result.Errors)
}

func writeTestExcel(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, val := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cellRef, val))
		}
	}
	path := filepath.Join(t.TempDir(), "parts.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := writeTestExcel(t, [][]string{
		{"ID", "Material", "Width", "Height", "Quantity", "Grain"},
		{"side", "MDF", "600", "400", "2", "fixed"},
		{"shelf", "Oak", "500", "300", "1", ""},
	})

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
	assert.Equal(t, "side", result.Parts[0].ID)
	assert.Equal(t, "fixed", result.Parts[0].GrainDirection)
	assert.Equal(t, "Oak", result.Parts[1].Material)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.NotEmpty(t, result.Errors)
}
