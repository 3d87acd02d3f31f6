package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/models"
)

func TestWriter_WritesFileAndEchoes(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out", "people.json")
	var echo bytes.Buffer

	w := NewWriter(config.OutputConfig{File: outFile}, &echo, zerolog.Nop())
	records := []models.PersonRecord{
		{NameTH: "สมชาย ใจดี", NameEN: "Somchai Jaidee", ProfileURL: "https://computing.kku.ac.th/somchai.j"},
	}
	require.NoError(t, w.Write(records))

	fileData, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, fileData, echo.Bytes(), "file and echoed output are identical")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(fileData, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Somchai Jaidee", decoded[0]["name_en"])
	assert.Equal(t, "https://computing.kku.ac.th/somchai.j", decoded[0]["profile_url"])
}

func TestWriter_EmptyRunProducesEmptyArray(t *testing.T) {
	var echo bytes.Buffer
	w := NewWriter(config.OutputConfig{}, &echo, zerolog.Nop())

	require.NoError(t, w.WriteEmpty())
	assert.Equal(t, "[]\n", echo.String())
}

func TestWriter_NilSliceMarshalsAsArray(t *testing.T) {
	var echo bytes.Buffer
	w := NewWriter(config.OutputConfig{}, &echo, zerolog.Nop())

	require.NoError(t, w.Write(nil))

	var decoded []models.PersonRecord
	require.NoError(t, json.Unmarshal(echo.Bytes(), &decoded))
	assert.Empty(t, decoded)
}
