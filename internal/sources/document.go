package sources

import (
	"context"
	"os"

	"github.com/jonathan/talent-profiles/internal/types"
)

// RawDocumentData is the shaped payload of a résumé-like document.
// The identifier is expected to point at plain text; binary résumé parsing
// (PDF/DOC) is handled by an upstream extraction service.
type RawDocumentData struct {
	Text string
}

// Kind implements RawData.
func (RawDocumentData) Kind() types.SourceKind { return types.SourceDocument }

// DocumentAdapter reads résumé text from a local path.
type DocumentAdapter struct{}

// Kind implements Adapter.
func (*DocumentAdapter) Kind() types.SourceKind { return types.SourceDocument }

// Fetch reads the document at the identifier path.
func (*DocumentAdapter) Fetch(_ context.Context, identifier string) (RawData, error) {
	data, err := os.ReadFile(identifier)
	if err != nil {
		return nil, err
	}
	return RawDocumentData{Text: string(data)}, nil
}
