package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/laneflow/pkg/cache"
	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/input"
)

const descriptor = `{
	"direction": "top-down",
	"groups": [
		{"id": "intake", "label": "Intake", "color": "blue"},
		{"id": "fulfil", "label": "Fulfilment", "color": "green"}
	],
	"nodes": [
		{"id": "request", "group": "intake"},
		{"id": "decide", "group": "intake", "shape": "gateway"},
		{"id": "pick", "group": "fulfil", "shape": "task"}
	],
	"connections": [
		{"from": "request", "to": "decide"},
		{"from": "decide", "to": "pick", "label": "approved"},
		{"from": "pick", "to": "request", "style": "dashed"}
	]
}`

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(context.Background(), []byte(descriptor), Options{
		Formats: []string{"drawio", "mermaid", "text"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Graph == nil {
		t.Fatal("result carries no graph")
	}
	if len(result.Graph.Nodes()) != 3 || len(result.Graph.Edges()) != 3 {
		t.Errorf("graph has %d nodes, %d edges", len(result.Graph.Nodes()), len(result.Graph.Edges()))
	}
	for _, e := range result.Graph.Edges() {
		if e.Route == nil {
			t.Errorf("edge %s->%s not routed", e.From, e.To)
		}
	}

	for _, format := range []string{"drawio", "mermaid", "text"} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("no artifact for %s", format)
		}
		if result.Cached[format] {
			t.Errorf("first run should not be cached (%s)", format)
		}
	}
	if !strings.Contains(string(result.Artifacts["mermaid"]), "flowchart TD") {
		t.Error("mermaid artifact malformed")
	}
}

func TestExecuteDefaultFormat(t *testing.T) {
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(context.Background(), []byte(descriptor), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts[DefaultFormat]) == 0 {
		t.Errorf("empty options should produce the default %s artifact", DefaultFormat)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil)
	opts := Options{Formats: []string{"drawio"}}
	ctx := context.Background()

	first, err := runner.Execute(ctx, []byte(descriptor), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached["drawio"] {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, []byte(descriptor), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached["drawio"] {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts["drawio"]) != string(second.Artifacts["drawio"]) {
		t.Error("cached artifact differs from fresh render")
	}
}

func TestExecuteNoCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil)
	opts := Options{Formats: []string{"drawio"}, NoCache: true}
	ctx := context.Background()

	if _, err := runner.Execute(ctx, []byte(descriptor), opts); err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, []byte(descriptor), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached["drawio"] {
		t.Error("NoCache should bypass the cache")
	}
}

func TestExecuteInvalidDescriptor(t *testing.T) {
	runner := NewRunner(nil, nil)

	tests := []struct {
		name     string
		json     string
		wantCode errors.Code
	}{
		{"malformed json", `{"direction"`, errors.ErrCodeInvalidInput},
		{"bad direction", `{"direction": "diagonal", "nodes": []}`, errors.ErrCodeInvalidDirection},
		{"self loop", `{"direction": "top-down", "nodes": [{"id": "a"}], "connections": [{"from": "a", "to": "a"}]}`, errors.ErrCodeUnsupported},
		{"bad format", descriptor, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{}
			if tt.wantCode == errors.ErrCodeInvalidFormat {
				opts.Formats = []string{"pdf"}
			}
			_, err := runner.Execute(context.Background(), []byte(tt.json), opts)
			if err == nil {
				t.Fatal("Execute should fail")
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("code = %s, want %s (err: %v)", code, tt.wantCode, err)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	runner := NewRunner(nil, nil)
	d, err := input.Parse([]byte(descriptor))
	if err != nil {
		t.Fatal(err)
	}

	g, err := runner.Build(d, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Width == 0 || g.Height == 0 {
		t.Error("graph not laid out")
	}
	for _, e := range g.Edges() {
		if e.Route == nil {
			t.Errorf("edge %s->%s not routed", e.From, e.To)
		}
	}
}
