package combiner

import (
	"strings"

	"github.com/maruel/natural"
)

// naturalLess orders paths with digit runs compared by value, so
// "2. Intro" sorts before "10. Wrap up". Case is ignored; names that only
// differ in case or leading zeros fall back to byte order.
func naturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if natural.Less(la, lb) {
		return true
	}
	if natural.Less(lb, la) {
		return false
	}
	return a < b
}
