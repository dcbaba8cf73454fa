package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MergePDFs concatenates the given PDF documents into a single file,
// in order.
func MergePDFs(w io.Writer, documents [][]byte) error {
	if len(documents) == 0 {
		return fmt.Errorf("merge: no documents")
	}

	readers := make([]io.ReadSeeker, len(documents))
	for i, document := range documents {
		readers[i] = bytes.NewReader(document)
	}
	return api.MergeRaw(readers, w, false, nil)
}
