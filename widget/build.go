package widget

import (
	"errors"
	"fmt"

	"github.com/terminalpro/widgets-backend/spec"
)

// ErrEmptyManifest is returned when Options.RequireNonEmpty is set and the
// build produced no widgets.
var ErrEmptyManifest = errors.New("manifest is empty")

// Options configure a manifest build.
type Options struct {
	// RequireNonEmpty makes a build fail instead of publishing an empty
	// manifest.
	RequireNonEmpty bool
}

// Build runs the whole pipeline on a loaded document: classify operations,
// map their parameters, synthesize definitions and aggregate the manifest.
// Per-operation problems are returned as warnings alongside the manifest;
// only an empty result under RequireNonEmpty is an error.
func Build(doc *spec.Document, opts Options) (*Manifest, []Warning, error) {
	descriptors, warnings := Classify(doc.Spec)

	defs := make([]Definition, 0, len(descriptors))
	for _, desc := range descriptors {
		controls, badParam := mapControls(desc.Params)
		if badParam != "" {
			warnings = append(warnings, Warning{
				OperationID: desc.ID,
				Path:        desc.Path,
				Method:      desc.Method,
				Reason:      fmt.Sprintf("unmappable parameter %q", badParam),
			})
			continue
		}
		defs = append(defs, Synthesize(doc.Spec, desc, controls))
	}

	manifest, dupWarnings := NewManifest(doc.Fingerprint, defs)
	warnings = append(warnings, dupWarnings...)

	if opts.RequireNonEmpty && manifest.Len() == 0 {
		return nil, warnings, ErrEmptyManifest
	}
	return manifest, warnings, nil
}
