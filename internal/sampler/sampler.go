package sampler

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nkvale/quickfind/pkg/types"
)

// Sample implements the seven-step algorithm. r must support
// ReadAt over the whole file; size is the file's length in bytes as observed
// at enumeration time. Returns "" with a nil error when the file should be
// indexed by name only (oversized, binary, or empty).
func Sample(r io.ReaderAt, size uint64, policy types.SamplingPolicy) (string, error) {
	// 1. Hard ceiling.
	if size > policy.MaxBytes {
		return "", nil
	}

	// 2. coverage_fraction == 0 means always read in full.
	if policy.CoverageFraction == 0 {
		return fullRead(r, size, policy)
	}

	// 3. Small files are read in full regardless of coverage_fraction.
	if size <= policy.SmallFileThreshold {
		return fullRead(r, size, policy)
	}

	// 4. Compute the head/tail split.
	headBytes, tailBytes := splitBudget(size, policy)

	// 5. If the sample would cover the whole file anyway, fall back to full read.
	if headBytes+tailBytes >= size {
		return fullRead(r, size, policy)
	}

	// 6. Read and sniff head and tail slices.
	head := make([]byte, headBytes)
	if _, err := r.ReadAt(head, 0); err != nil && err != io.EOF {
		return "", fmt.Errorf("sampler: read head: %w", err)
	}
	if looksBinary(head, policy.SniffBytes) {
		return "", nil
	}

	tail := make([]byte, tailBytes)
	tailOff := int64(size - tailBytes)
	if tailBytes > 0 {
		if _, err := r.ReadAt(tail, tailOff); err != nil && err != io.EOF {
			return "", fmt.Errorf("sampler: read tail: %w", err)
		}
	}
	if tailBytes > 0 && looksBinary(tail, policy.SniffBytes) {
		tail = nil
	}

	// 7. Decode and join.
	headText := decodeUTF8(head)
	tailText := decodeUTF8(tail)
	return join(headText, tailText), nil
}

// fullRead reads up to min(size, max_bytes) bytes from the start, sniffs the
// leading sniff_bytes for binary content, and decodes the rest.
func fullRead(r io.ReaderAt, size uint64, policy types.SamplingPolicy) (string, error) {
	readLen := size
	if readLen > policy.MaxBytes {
		readLen = policy.MaxBytes
	}
	buf := make([]byte, readLen)
	if readLen > 0 {
		if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
			return "", fmt.Errorf("sampler: full read: %w", err)
		}
	}
	if looksBinary(buf, policy.SniffBytes) {
		return "", nil
	}
	return decodeUTF8(buf), nil
}

// splitBudget implements step 4: compute head_bytes/tail_bytes honoring the
// configured fractions, the overall budget, and the min-floor guarantees,
// without ever pushing the total past budget.
func splitBudget(size uint64, policy types.SamplingPolicy) (head, tail uint64) {
	budget := uint64(float64(size) * policy.CoverageFraction)
	if budget > policy.MaxBytes {
		budget = policy.MaxBytes
	}
	if budget > size {
		budget = size
	}

	head = uint64(float64(size) * policy.HeadFraction)
	tail = uint64(float64(size) * policy.TailFraction)

	if head+tail > budget {
		if head+tail == 0 {
			return 0, 0
		}
		// Scale both down proportionally to fit the budget.
		head = budget * head / (head + tail)
		tail = budget - head
	}

	// Floor head first.
	if head < policy.MinHeadBytes {
		deficit := policy.MinHeadBytes - head
		head = policy.MinHeadBytes
		if deficit > tail {
			tail = 0
		} else {
			tail -= deficit
		}
		if head > budget {
			head = budget
		}
	}

	// Re-floor tail with whatever budget remains.
	if tail < policy.MinTailBytes {
		available := int64(budget) - int64(head) - int64(tail)
		if available < 0 {
			available = 0
		}
		needed := policy.MinTailBytes - tail
		take := needed
		if take > uint64(available) {
			take = uint64(available)
		}
		tail += take
	}

	if head+tail > budget {
		tail = budget - head
	}

	return head, tail
}

// looksBinary sniffs the first n bytes of buf (n = min(len(buf), sniffBytes))
// step 6: binary if any NUL byte appears, or more than 10% of
// the sniffed bytes are non-printable control characters.
func looksBinary(buf []byte, sniffBytes int) bool {
	if len(buf) == 0 {
		return false
	}
	n := len(buf)
	if sniffBytes > 0 && sniffBytes < n {
		n = sniffBytes
	}
	sample := buf[:n]

	nonPrintable := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b < 9 || (b >= 14 && b < 32) {
			nonPrintable++
		}
	}
	return float64(nonPrintable) > 0.10*float64(len(sample))
}

// decodeUTF8 decodes buf as UTF-8, replacing ill-formed sequences with the
// Unicode replacement character, exactly as step 7 requires.
func decodeUTF8(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	if utf8.Valid(buf) {
		return string(buf)
	}
	var b strings.Builder
	b.Grow(len(buf))
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		b.WriteRune(r)
		buf = buf[size:]
	}
	return b.String()
}

// join concatenates head and tail with the content separator, omitting it
// when either side is empty.
func join(head, tail string) string {
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	default:
		return head + types.ContentSeparator + tail
	}
}
