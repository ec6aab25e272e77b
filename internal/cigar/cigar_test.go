package cigar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		cigar string
		want  Plan
	}{
		{"single match", "8M", Plan{{Match, 8}}},
		{"single insertion", "2I", Plan{{Insertion, 2}}},
		{"single deletion", "7D", Plan{{Deletion, 7}}},
		{
			"mixed operations",
			"8M7D6M2I2M11D7M",
			Plan{{Match, 8}, {Deletion, 7}, {Match, 6}, {Insertion, 2}, {Match, 2}, {Deletion, 11}, {Match, 7}},
		},
		{"multi-digit length", "120M", Plan{{Match, 120}}},
		{"adjacent same kind preserved", "3M4M", Plan{{Match, 3}, {Match, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.cigar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		cigar string
	}{
		{"empty", ""},
		{"unsupported opcode", "5X"},
		{"skipped region opcode", "10N"},
		{"lowercase opcode", "8m"},
		{"zero length", "0M"},
		{"missing length", "M"},
		{"missing length mid-string", "8MI"},
		{"trailing length", "8M7"},
		{"garbage", "eightM"},
		{"negative length", "-8M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.cigar)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestPlan_Totals(t *testing.T) {
	plan, err := Parse("8M7D6M2I2M11D7M")
	require.NoError(t, err)

	// Transcript length = M + I, genomic span = M + D.
	assert.Equal(t, int64(25), plan.TranscriptLen())
	assert.Equal(t, int64(41), plan.GenomicSpan())
}

func TestPlan_TotalsMatchOnly(t *testing.T) {
	plan, err := Parse("11M")
	require.NoError(t, err)

	assert.Equal(t, int64(11), plan.TranscriptLen())
	assert.Equal(t, int64(11), plan.GenomicSpan())
}

func TestPlan_String(t *testing.T) {
	for _, s := range []string{"8M", "8M7D6M2I2M11D7M", "1M1I1D"} {
		plan, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, plan.String())
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := Parse("8M7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed CIGAR")
	assert.Contains(t, err.Error(), "8M7")
}
