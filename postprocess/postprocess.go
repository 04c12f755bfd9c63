// Package postprocess runs the nine ordered passes that turn a freshly
// parsed model.Library into one ready for analysis: resolving stubs,
// correlating class/instance records, detecting final types, rewriting
// error-domain quark functions, and filling missing c:type by inference.
//
// The pass ordering and each pass's responsibility is grounded on the
// ir.Design build pipeline's staged construction
// (_examples/goadesign-goa-ai/codegen/ir/build.go), which likewise runs a
// fixed sequence of whole-tree passes before anything downstream reads the
// result.
package postprocess

import (
	"fmt"

	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

// Diagnostic is a non-fatal warning recorded by a tolerant pass (signal
// c-type inference, field c-type inference), surfaced to the run's store
// record per spec.md §7 tier 3.
type Diagnostic struct {
	Pass    string
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Pass, d.Subject, d.Message)
}

// Result carries the non-fatal output of a Run: warnings accumulated by
// tolerant passes. A non-nil error from Run is always fatal (tier 1).
type Result struct {
	Diagnostics []Diagnostic
}

func (r *Result) warn(pass, subject, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Pass: pass, Subject: subject, Message: msg})
}

// Run executes the nine passes of spec.md §4.2, in order, against lib.
// matcher supplies the config overrides passes 7 (final_type) and 9 (member
// status) consult. A returned error is always fatal and aborts the run;
// partial mutation to lib may have already happened since passes 2, 4 and 8
// are strict-abort but 1/3/5/6/7/9 cannot themselves fail.
func Run(lib *model.Library, matcher *config.Matcher) (*Result, error) {
	res := &Result{}

	fixGTypeAlias(lib)

	if err := checkResolution(lib); err != nil {
		return res, err
	}

	inferSignalCTypes(lib, res)

	if err := correlateClassStructs(lib); err != nil {
		return res, err
	}

	fixupFields(lib, res)

	opaquifyUnions(lib)

	detectFinalTypes(lib, matcher)

	if err := rewriteErrorDomains(lib); err != nil {
		return res, err
	}

	propagateMemberStatus(lib, matcher)

	return res, nil
}
