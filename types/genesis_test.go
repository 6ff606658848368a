package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenesisValidateAndComplete(t *testing.T) {
	gen := &GenesisDoc{ChainID: "baekya-1"}
	require.NoError(t, gen.ValidateAndComplete())
	require.Len(t, gen.DAOs, 4)
	require.EqualValues(t, InitialOperatorGrant, gen.OperatorGrant)
	require.False(t, gen.GenesisTime.IsZero())

	ops := 0
	for _, d := range gen.DAOs {
		if d.Operations {
			ops++
		}
	}
	require.Equal(t, 1, ops)
}

func TestGenesisRejectsMissingChainId(t *testing.T) {
	gen := &GenesisDoc{}
	require.Error(t, gen.ValidateAndComplete())
}

func TestGenesisRejectsAmbiguousOperationsDAO(t *testing.T) {
	gen := &GenesisDoc{
		ChainID: "baekya-1",
		DAOs: []GenesisDAO{
			{Name: "A", Operations: true},
			{Name: "B", Operations: true},
		},
	}
	require.Error(t, gen.ValidateAndComplete())

	gen.DAOs[1].Operations = false
	require.NoError(t, gen.ValidateAndComplete())
}

func TestGenesisFileRoundtrip(t *testing.T) {
	file := t.TempDir() + "/genesis.json"
	gen := &GenesisDoc{
		ChainID:         "baekya-1",
		InitialOperator: "founder",
	}
	require.NoError(t, ExportGenesisFile(gen, file))

	loaded, err := LoadGenesisFile(file)
	require.NoError(t, err)
	require.Equal(t, "baekya-1", loaded.ChainID)
	require.Equal(t, "founder", loaded.InitialOperator)
	require.Len(t, loaded.DAOs, 4)
}
