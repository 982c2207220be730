package ref

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New returns a document reference like SL-1a2b3c4d. UUID-derived so a
// retried create produces a distinct reference (and a distinct document).
func New(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, id[:8])
}
