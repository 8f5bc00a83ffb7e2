package roster

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin/internal/sheets"
	"checkin/pkg/platform/sentinel"
)

func newTestBuilder(fake *sheets.Fake) *Builder {
	return NewBuilder(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuild_IndexesAttendees(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome Completo", "Número de Inscrição"},
		{"123.456.789-01", "Ana Souza", "A42"},
		{"98765432100", "Bruno Lima", "B07"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Staffs"})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	rec, ok := idx.Lookup("12345678901")
	require.True(t, ok)
	assert.Equal(t, "Ana Souza", rec.DisplayName)
	assert.Equal(t, "A42", rec.RegistrationNumber)
	assert.Equal(t, "Staffs", rec.SourceTable)
}

func TestBuild_SkipsRowsWithoutIdentity(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"", "Sem CPF", "X1"},
		{"---", "Só Pontuação", "X2"},
		{"11122233344", "Com CPF", "X3"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Staffs"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	_, ok := idx.Lookup("11122233344")
	assert.True(t, ok)
}

func TestBuild_FirstWriterWinsAcrossTables(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Palestrantes", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Palestrante", "P10"},
	})
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Staff", "S99"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Palestrantes", "Staffs"})
	require.NoError(t, err)

	rec, ok := idx.Lookup("12345678901")
	require.True(t, ok)
	assert.Equal(t, "Ana Palestrante", rec.DisplayName)
	assert.Equal(t, "P10", rec.RegistrationNumber)
	assert.Equal(t, "Palestrantes", rec.SourceTable)
}

func TestBuild_UpgradesRecordWithoutRegistration(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Convidados", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Convidada", ""},
	})
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Staff", "S99"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Convidados", "Staffs"})
	require.NoError(t, err)

	rec, ok := idx.Lookup("12345678901")
	require.True(t, ok)
	assert.Equal(t, "S99", rec.RegistrationNumber)
	assert.Equal(t, "Staffs", rec.SourceTable)
}

func TestBuild_SkipsTableMissingColumns(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Imprensa", [][]string{
		{"Nome", "Veículo"},
		{"Carla Reporter", "Jornal"},
	})
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Souza", "A42"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Imprensa", "Staffs"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestBuild_SkipsTableMissingFromDocument(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Souza", "A42"},
	})

	idx, err := newTestBuilder(fake).Build(context.Background(), []string{"Inexistente", "Staffs"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestBuild_AbortsWhenTableListFails(t *testing.T) {
	fake := sheets.NewFake()
	fake.TitlesErr = sentinel.ErrUnauthorized

	_, err := newTestBuilder(fake).Build(context.Background(), []string{"Staffs"})
	require.ErrorIs(t, err, sentinel.ErrUnauthorized)
}

func TestBuild_AbortsWhenRowLoadFails(t *testing.T) {
	fake := sheets.NewFake()
	fake.SetTable("Staffs", [][]string{{"CPF", "Nome", "Inscrição"}})
	fake.RowsErr = sentinel.ErrUnavailable

	_, err := newTestBuilder(fake).Build(context.Background(), []string{"Staffs"})
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}
