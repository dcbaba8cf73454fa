package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
)

// DefaultXSLTProcPath is where most distributions install xsltproc.
const DefaultXSLTProcPath = "/usr/bin/xsltproc"

// XSLTProcOptions configure the xsltproc invocation.
type XSLTProcOptions struct {
	// Params pass node-identifier values to named stylesheet parameters.
	Params map[string]string
	// StringParams pass UTF-8 string values; use these unless the value
	// really is a node identifier.
	StringParams map[string]string
	// ExecutablePath overrides DefaultXSLTProcPath.
	ExecutablePath string
}

// xsltprocArgs builds the argument list: parameter flags first, then the
// stylesheet and the input document. Map order is made deterministic so
// invocations are reproducible.
func xsltprocArgs(xsltPath, xmlPath string, opts XSLTProcOptions) []string {
	args := make([]string, 0, 2*(len(opts.Params)+len(opts.StringParams))*2+2)
	args = append(args, paramArgs("--param", opts.Params)...)
	args = append(args, paramArgs("--stringparam", opts.StringParams)...)
	return append(args, xsltPath, xmlPath)
}

func paramArgs(flag string, params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]string, 0, 3*len(keys))
	for _, key := range keys {
		args = append(args, flag, key, params[key])
	}
	return args
}

// runXSLTProc applies the stylesheet to the XML document and returns the
// transformed output.
func runXSLTProc(ctx context.Context, xsltPath, xmlPath string, opts XSLTProcOptions) ([]byte, error) {
	executable := opts.ExecutablePath
	if executable == "" {
		executable = DefaultXSLTProcPath
	}

	cmd := exec.CommandContext(ctx, executable, xsltprocArgs(xsltPath, xmlPath, opts)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("xsltproc: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("xsltproc: %w", err)
	}
	return stdout.Bytes(), nil
}
