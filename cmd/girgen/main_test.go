package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
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
  </namespace>
</repository>`

// TestGenerateEndToEnd exercises the CLI driver's generate() against a
// minimal on-disk GIR file and TOML config, covering spec.md §8 scenario 1
// ("a GIR declaring class A with method a_method(self, int x)") through the
// full pipeline rather than a single analyzer in isolation.
func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	girsDir := filepath.Join(dir, "girs")
	targetDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(girsDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(girsDir, "Sample-1.0.gir"), []byte(sampleGIR), 0o644))

	configPath := filepath.Join(dir, "Gir.toml")
	configBody := sampleConfigFor(girsDir, targetDir)
	require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0o644))

	report, err := generate(context.Background(), generateOptions{configPath: configPath})
	require.NoError(t, err)
	require.Equal(t, "Sample", report.Library)
	require.Equal(t, 1, report.Generated)
	require.Len(t, report.FilesWritten, 1)

	content, err := os.ReadFile(report.FilesWritten[0])
	require.NoError(t, err)
	require.Contains(t, string(content), "type Widget struct")
	require.Contains(t, string(content), "func (self *Widget) AMethod(")
}

func TestGenerateAppliesCLIOverrides(t *testing.T) {
	dir := t.TempDir()
	girsDir := filepath.Join(dir, "girs")
	targetDir := filepath.Join(dir, "out")
	overrideTargetDir := filepath.Join(dir, "override-out")
	require.NoError(t, os.MkdirAll(girsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(girsDir, "Sample-1.0.gir"), []byte(sampleGIR), 0o644))

	configPath := filepath.Join(dir, "Gir.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(sampleConfigFor(girsDir, targetDir)), 0o644))

	report, err := generate(context.Background(), generateOptions{
		configPath: configPath,
		targetPath: overrideTargetDir,
	})
	require.NoError(t, err)
	for _, f := range report.FilesWritten {
		require.Contains(t, f, overrideTargetDir)
	}
}

func sampleConfigFor(girsDir, targetDir string) string {
	return "[options]\n" +
		"work_mode = \"normal\"\n" +
		"girs_dir = \"" + girsDir + "\"\n" +
		"library = \"Sample\"\n" +
		"version = \"1.0\"\n" +
		"target_path = \"" + targetDir + "\"\n"
}
