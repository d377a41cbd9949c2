package sampler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/pkg/types"
)

func TestSample_SmallFileReadInFull(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	content := "hello world"
	r := bytes.NewReader([]byte(content))

	got, err := Sample(r, uint64(len(content)), policy)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSample_OversizedReturnsNothing(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	policy.MaxBytes = 10
	r := bytes.NewReader([]byte("this is way more than ten bytes"))

	got, err := Sample(r, 32, policy)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSample_CoverageZeroReadsFull(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	policy.CoverageFraction = 0
	policy.SmallFileThreshold = 0
	content := strings.Repeat("a", 200*1024)
	r := bytes.NewReader([]byte(content))

	got, err := Sample(r, uint64(len(content)), policy)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSample_BinarySniffNUL(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	buf := append(bytes.Repeat([]byte{0}, 16), []byte("hello")...)
	r := bytes.NewReader(buf)

	got, err := Sample(r, uint64(len(buf)), policy)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSample_HeadTailSplitForLargeFile(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	policy.SmallFileThreshold = 1024
	size := 1024 * 1024
	content := strings.Repeat("x", size)
	content = "HEADHEADHEAD" + content[12:len(content)-12] + "TAILTAILTAIL"
	r := bytes.NewReader([]byte(content))

	got, err := Sample(r, uint64(len(content)), policy)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "HEADHEADHEAD"))
	assert.True(t, strings.HasSuffix(got, "TAILTAILTAIL"))
	assert.Contains(t, got, types.ContentSeparator)
	assert.LessOrEqual(t, len(got), int(policy.MaxBytes))
}

func TestSample_TailBinaryDropsTailKeepsHead(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	policy.SmallFileThreshold = 1024
	policy.SniffBytes = 16

	size := 1024 * 1024
	body := make([]byte, size)
	for i := range body {
		body[i] = 'a'
	}
	copy(body, []byte("plain text head"))
	// Poison the whole tail slice with NUL bytes so it sniffs as binary; the
	// sniff window is the first SniffBytes of the tail slice, not the file end.
	_, tailBytes := splitBudget(uint64(size), policy)
	copy(body[size-int(tailBytes):], bytes.Repeat([]byte{0}, int(tailBytes)))
	r := bytes.NewReader(body)

	got, err := Sample(r, uint64(size), policy)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, types.ContentSeparator)
}

func TestSplitBudget_FloorsNeverExceedBudget(t *testing.T) {
	policy := types.DefaultSamplingPolicy()
	head, tail := splitBudget(1_000_000, policy)
	budget := uint64(float64(1_000_000) * policy.CoverageFraction)
	assert.LessOrEqual(t, head+tail, budget)
}

func TestLooksBinary_ControlByteThreshold(t *testing.T) {
	clean := []byte("all printable ascii text here")
	assert.False(t, looksBinary(clean, 8192))

	dirty := make([]byte, 100)
	for i := range dirty {
		dirty[i] = 'a'
	}
	for i := 0; i < 20; i++ {
		dirty[i] = 0x01
	}
	assert.True(t, looksBinary(dirty, 8192))
}
