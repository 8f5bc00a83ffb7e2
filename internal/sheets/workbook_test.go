package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"checkin/pkg/platform/sentinel"
)

func newTestWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evento.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Staffs"))
	require.NoError(t, f.SetSheetRow("Staffs", "A1", &[]any{"CPF", "Nome", "Inscrição"}))
	require.NoError(t, f.SetSheetRow("Staffs", "A2", &[]any{"12345678901", "Ana Souza", "A42"}))

	_, err := f.NewSheet("Credenciamento Dia 1")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Credenciamento Dia 1", "A1", &[]any{"Inscrição", "Nome", "Data", "Hora"}))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestWorkbookClient_Titles(t *testing.T) {
	client := NewWorkbookClient(newTestWorkbook(t))

	titles, err := client.Titles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Staffs", "Credenciamento Dia 1"}, titles)
}

func TestWorkbookClient_Rows(t *testing.T) {
	client := NewWorkbookClient(newTestWorkbook(t))

	rows, err := client.Rows(context.Background(), "Staffs")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"CPF", "Nome", "Inscrição"}, rows[0])
	assert.Equal(t, "A42", rows[1][2])
}

func TestWorkbookClient_RowsMissingSheet(t *testing.T) {
	client := NewWorkbookClient(newTestWorkbook(t))

	_, err := client.Rows(context.Background(), "Inexistente")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestWorkbookClient_AppendRoundTrip(t *testing.T) {
	client := NewWorkbookClient(newTestWorkbook(t))
	ctx := context.Background()

	err := client.Append(ctx, "Credenciamento Dia 1", []string{"A42", "Ana Souza", "21/11/2025", "08:15:00"})
	require.NoError(t, err)

	rows, err := client.Rows(ctx, "Credenciamento Dia 1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A42", "Ana Souza", "21/11/2025", "08:15:00"}, rows[1])
}
