package state

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"cssnip/config"
	"cssnip/registry"
	"cssnip/snippet"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if len(env.DefaultSnippets) == 0 {
		t.Error("Builtin snippet table not embedded")
	}
}

func TestEnvFromContext_PanicsWithoutEnv(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectStdLogWithoutLogger(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	// no logger prepared yet - both must be no-ops
	env.RedirectStdLog()
	env.RestoreStdLog()
}

// The builtin table must resolve cleanly: every definition builds, keyword
// extraction works across the nested families.
func TestDefaultSnippets_Resolve(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	defs, err := (&config.SnippetsConfig{}).Definitions(env.DefaultSnippets)
	if err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	if len(defs) == 0 {
		t.Fatal("builtin table is empty")
	}

	reg, err := registry.New(zap.NewNop(), defs)
	if err != nil {
		t.Fatalf("builtin table has bad definitions: %v", err)
	}
	if reg.Len() != len(defs) {
		t.Errorf("registered %d snippets from %d definitions", reg.Len(), len(defs))
	}

	// background family links up through abbreviation keys
	bg, ok := reg.Get("bg")
	if !ok {
		t.Fatal("bg not registered")
	}
	if len(bg.Dependencies()) == 0 {
		t.Error("bg has no longhand dependencies")
	}

	refs, ok := reg.Keywords("bg")
	if !ok || len(refs) == 0 {
		t.Fatalf("Keywords(bg) = %v, %v", refs, ok)
	}
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.Keyword]; dup {
			t.Errorf("duplicate keyword %q", ref.Keyword)
		}
		seen[ref.Keyword] = struct{}{}
	}
	// keywords from longhand background-repeat must be visible from bg
	if _, ok := seen["no-repeat"]; !ok {
		t.Error("keyword no-repeat from background-repeat not reachable from bg")
	}
}

func builtinRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	env := EnvFromContext(ContextWithEnv(context.Background()))
	defs, err := (&config.SnippetsConfig{}).Definitions(env.DefaultSnippets)
	if err != nil {
		t.Fatalf("Definitions() error = %v", err)
	}
	reg, err := registry.New(zap.NewNop(), defs)
	if err != nil {
		t.Fatalf("builtin table has bad definitions: %v", err)
	}
	return reg
}

// The font shorthand must link all its longhands, keywords included.
func TestDefaultSnippets_FontFamily(t *testing.T) {
	reg := builtinRegistry(t)

	f, ok := reg.Get("f")
	if !ok {
		t.Fatal("f not registered")
	}
	deps := make(map[string]struct{})
	for _, dep := range f.Dependencies() {
		deps[dep.Property] = struct{}{}
	}
	for _, prop := range []string{"font-family", "font-style", "font-size", "font-weight"} {
		if _, ok := deps[prop]; !ok {
			t.Errorf("%s not linked under font, got %v", prop, deps)
		}
	}

	refs, ok := reg.Keywords("f")
	if !ok {
		t.Fatal("Keywords(f) reports unknown key")
	}
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		seen[ref.Keyword] = struct{}{}
	}
	for _, kw := range []string{"caption", "serif", "italic", "smaller", "bold"} {
		if _, ok := seen[kw]; !ok {
			t.Errorf("keyword %q not reachable from f, got %v", kw, seen)
		}
	}
}

// Builtin keys are chosen so that key-sorted grouping and property-prefix
// linking agree: whenever one builtin property is a hyphen-prefix of another,
// the longhand must end up linked under its nearest builtin ancestor. A key
// sorted into the middle of a family run would break this.
func TestDefaultSnippets_FamiliesLink(t *testing.T) {
	reg := builtinRegistry(t)

	var props []*snippet.Snippet
	for _, s := range reg.All() {
		if s.Kind == snippet.KindProperty {
			props = append(props, s)
		}
	}

	for _, child := range props {
		var parent *snippet.Snippet
		for _, cand := range props {
			if cand == child || !strings.HasPrefix(child.Property, cand.Property+"-") {
				continue
			}
			if parent == nil || len(cand.Property) > len(parent.Property) {
				parent = cand
			}
		}
		if parent == nil {
			continue
		}
		if !slices.Contains(parent.Dependencies(), child) {
			t.Errorf("%s (key %s) not linked under %s (key %s)", child.Property, child.Key, parent.Property, parent.Key)
		}
	}
}
