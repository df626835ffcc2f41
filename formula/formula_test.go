package formula

import (
	"testing"

	"github.com/go-orcus/orcus/model"
)

func TestTokenizePreservesBaseAndProducesTokens(t *testing.T) {
	base := model.Address{Sheet: 0, Row: 0, Column: 0}
	stream := Tokenize("B1+C1", base)

	if stream.Base != base {
		t.Fatalf("expected base %+v, got %+v", base, stream.Base)
	}
	if len(stream.Tokens) == 0 {
		t.Fatalf("expected at least one token for a non-empty expression")
	}
}
