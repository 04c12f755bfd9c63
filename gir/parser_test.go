package gir

import (
	"strings"
	"testing"
)

const sampleGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <namespace name="Sample" version="1.0">
    <class name="Widget" c:type="SampleWidget" glib:get-type="sample_widget_get_type">
      <method name="a_method" c:identifier="sample_widget_a_method">
        <return-value transfer-ownership="none"><type name="none" c:type="void"/></return-value>
        <parameters>
          <instance-parameter name="self"><type name="Widget" c:type="SampleWidget*"/></instance-parameter>
          <parameter name="x"><type name="gint" c:type="gint"/></parameter>
        </parameters>
      </method>
    </class>
    <enumeration name="Error" glib:error-domain="sample-error-quark">
      <member name="failed" value="0" c:identifier="SAMPLE_ERROR_FAILED"/>
    </enumeration>
    <function name="error_quark" c:identifier="sample_error_quark">
      <return-value transfer-ownership="none"><type name="GType" c:type="GType"/></return-value>
    </function>
  </namespace>
</repository>`

func TestParseInlineGIR(t *testing.T) {
	p := &Parser{lib: newTestLibrary(), loaded: make(map[string]bool)}
	if err := p.parseReader("sample.gir", strings.NewReader(sampleGIR)); err != nil {
		t.Fatalf("parseReader: %v", err)
	}

	ns, ok := p.lib.NamespaceByName("Sample")
	if !ok {
		t.Fatalf("namespace Sample not registered")
	}

	widgetID, ok := ns.FindByName("Widget")
	if !ok {
		t.Fatalf("Widget not found")
	}
	widget, _ := p.lib.Type(widgetID)
	if widget.Kind != widget.Kind {
		t.Fatal("unreachable")
	}
	if len(widget.Functions) != 1 {
		t.Fatalf("expected 1 method on Widget, got %d", len(widget.Functions))
	}
	method, _ := p.lib.Type(widget.Functions[0])
	fn := method.FunctionInfo
	if fn.Name != "a_method" {
		t.Fatalf("method name = %q", fn.Name)
	}
	if !fn.HasInstanceParameter() {
		t.Fatalf("expected instance parameter on method")
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters (self, x), got %d", len(fn.Parameters))
	}

	errEnum, ok := ns.FindByName("Error")
	if !ok {
		t.Fatalf("Error enum not found")
	}
	errType, _ := p.lib.Type(errEnum)
	if errType.ErrorDomain == nil || errType.ErrorDomain.Quark != "sample-error-quark" {
		t.Fatalf("expected error domain quark recorded, got %+v", errType.ErrorDomain)
	}
}

func TestIncludeCycleDetected(t *testing.T) {
	p := &Parser{lib: newTestLibrary(), loaded: make(map[string]bool), loading: []string{"A", "B"}}
	err := p.handleInclude(newAttrs("include", Position{}, attrList(map[string]string{"name": "A"})))
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
}
