package manifest

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`
package:
  name: Stage
  version: "2.13"
  namespace: "Stage::"
targets:
  - name: core
    kind: library
    export: true
    outputs:
      default:
        runtime: out/libcore.so.2
        nameLink: libcore.so
    destinations:
      - base: lib
  - name: gl
    kind: plugin
    type: graphics
    resources: shaders/glsl
plugins:
  types: [graphics, io]
  shaderDestination: share/stage/shaders
`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Package.Name != "Stage" || m.Package.Version != "2.13" {
		t.Errorf("package = %+v", m.Package)
	}
	if len(m.Targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(m.Targets))
	}
	if m.Targets[0].Outputs["default"].NameLink != "libcore.so" {
		t.Errorf("outputs = %+v", m.Targets[0].Outputs)
	}
	if m.Plugins == nil || m.Plugins.ShaderDestination != "share/stage/shaders" {
		t.Errorf("plugins = %+v", m.Plugins)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing package name",
			data: "targets:\n  - name: core\n",
			want: "package name",
		},
		{
			name: "unnamed target",
			data: "package:\n  name: Stage\ntargets:\n  - kind: library\n",
			want: "no name",
		},
		{
			name: "duplicate target",
			data: "package:\n  name: Stage\ntargets:\n  - name: core\n  - name: core\n",
			want: "duplicate target",
		},
		{
			name: "unknown field",
			data: "package:\n  name: Stage\n  colour: blue\n",
			want: "field colour not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/absent.yaml"); err == nil {
		t.Error("Load of missing file: expected error")
	}
}
