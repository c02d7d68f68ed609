package statistics

import (
	"fmt"
	"unicode/utf16"
)

// ColorFor maps a category label to a stable HSL color.
//
// The hash runs over UTF-16 code units. Only the shifted term is truncated to
// 32 bits; the running sum is not, which keeps colors identical to the ones
// already shown by existing clients.
func ColorFor(label string) string {
	var hash int64
	for _, unit := range utf16.Encode([]rune(label)) {
		shifted := int64(int32(uint32(hash) << 5))
		hash = int64(unit) + shifted - hash
	}

	if hash < 0 {
		hash = -hash
	}

	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hash%360)
}
