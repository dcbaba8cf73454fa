package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// XMLSource fetches the UBL XML document to be rendered, typically a bound
// portal download call.
type XMLSource func(ctx context.Context) ([]byte, error)

var embeddedObjectPattern = regexp.MustCompile(
	`<(cbc:EmbeddedDocumentBinaryObject)\s(.*?)\sfilename=".*">.*</cbc:EmbeddedDocumentBinaryObject>`,
)

// XSLTRenderer compiles an invoice's UBL XML with a custom XSLT
// stylesheet. The stylesheet replaces the portal's embedded one inside the
// XML before rendering, so downstream viewers also pick it up.
type XSLTRenderer struct {
	xsltPath string
	source   XMLSource
	opts     XSLTProcOptions

	xml []byte // fetched once, reused across renders
}

// NewXSLTRenderer creates a renderer for one stylesheet and one XML source.
func NewXSLTRenderer(xsltPath string, source XMLSource, opts XSLTProcOptions) *XSLTRenderer {
	return &XSLTRenderer{
		xsltPath: xsltPath,
		source:   source,
		opts:     opts,
	}
}

// ToXML returns the invoice XML with the stylesheet embedded in place of
// the portal's own.
func (r *XSLTRenderer) ToXML(ctx context.Context) ([]byte, error) {
	if r.xml == nil {
		fetched, err := r.source(ctx)
		if err != nil {
			return nil, err
		}
		r.xml = fetched
	}

	encoded, err := r.xsltBase64()
	if err != nil {
		return nil, err
	}

	replacement := fmt.Sprintf(`<$1 $2 filename="%s">%s</$1>`, filepath.Base(r.xsltPath), encoded)
	return embeddedObjectPattern.ReplaceAll(r.xml, []byte(replacement)), nil
}

// ToHTML applies the stylesheet and returns the rendered document.
func (r *XSLTRenderer) ToHTML(ctx context.Context) ([]byte, error) {
	xml, err := r.ToXML(ctx)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "earsiv-*.xml")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(xml); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return runXSLTProc(ctx, r.xsltPath, tmp.Name(), r.opts)
}

// ToPDF renders the stylesheet output to PDF.
func (r *XSLTRenderer) ToPDF(ctx context.Context, opts PDFOptions) ([]byte, error) {
	html, err := r.ToHTML(ctx)
	if err != nil {
		return nil, err
	}
	return HTMLToPDF(ctx, string(html), opts)
}

// XSLTContent returns the raw stylesheet bytes.
func (r *XSLTRenderer) XSLTContent() ([]byte, error) {
	return os.ReadFile(r.xsltPath)
}

func (r *XSLTRenderer) xsltBase64() (string, error) {
	content, err := r.XSLTContent()
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(content), nil
}
