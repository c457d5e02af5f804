package siamese

import (
	"context"
	"iter"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cognicore/siamese/internal/webfetch"
	"github.com/cognicore/siamese/pkg/siamese/builtin"
	"github.com/cognicore/siamese/pkg/siamese/config"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

const familyDoc = `
facts:
  - parent(tom, john)
  - parent(tom, mary)
  - parent(tom, john)
rules:
  - head: sibling(?X, ?Y)
    body:
      - parent(?P, ?X)
      - parent(?P, ?Y)
      - neq(?X, ?Y)
`

func familyEngine(t *testing.T) *RuleEngine {
	t.Helper()
	base, err := config.ParseKnowledge([]byte(familyDoc))
	if err != nil {
		t.Fatalf("parse knowledge: %v", err)
	}
	return New(Options{KB: base})
}

func TestQueryEnumeratesSiblings(t *testing.T) {
	engine := familyEngine(t)

	var got []term.Term
	for sol := range engine.Query(context.Background(), "sibling", "john", "?S") {
		got = append(got, sol["?S"])
	}

	// The duplicated parent(tom, john) fact means mary appears twice;
	// john never appears.
	if len(got) != 2 {
		t.Fatalf("expected 2 solutions, got %d: %v", len(got), got)
	}
	for i, s := range got {
		if !term.Equal(s, term.Atom("mary")) {
			t.Errorf("solution %d = %v, want mary", i, s)
		}
	}
}

func TestQueryRepeatedPlaceholdersShareOneVariable(t *testing.T) {
	engine := familyEngine(t)

	// sibling(?S, ?S) can never hold because of neq.
	count := 0
	for range engine.Query(context.Background(), "sibling", "?S", "?S") {
		count++
	}
	if count != 0 {
		t.Errorf("sibling(?S, ?S) should have no solutions, got %d", count)
	}
}

func TestQueryOneReturnsFirstSolution(t *testing.T) {
	engine := familyEngine(t)

	sol, ok := engine.QueryOne(context.Background(), "sibling", "john", "?S")
	if !ok {
		t.Fatal("expected a solution")
	}
	if !term.Equal(sol["?S"], term.Atom("mary")) {
		t.Errorf("?S = %v, want mary", sol["?S"])
	}

	if _, ok := engine.QueryOne(context.Background(), "sibling", "john", "john"); ok {
		t.Error("sibling(john, john) should have no solution")
	}
}

func TestExists(t *testing.T) {
	engine := familyEngine(t)
	ctx := context.Background()

	if !engine.Exists(ctx, "sibling", "john", "mary") {
		t.Error("sibling(john, mary) should exist")
	}
	if engine.Exists(ctx, "sibling", "john", "john") {
		t.Error("sibling(john, john) should not exist")
	}
}

func TestUnknownPredicateYieldsNothing(t *testing.T) {
	engine := familyEngine(t)

	count := 0
	for range engine.Query(context.Background(), "nonexistent_predicate", "a") {
		count++
	}
	if count != 0 {
		t.Errorf("unknown predicate should yield zero solutions, got %d", count)
	}
}

func TestQueryIsolation(t *testing.T) {
	engine := familyEngine(t)
	ctx := context.Background()

	// Two interleaved queries over one engine must not observe each
	// other's bindings.
	next, stop := iter.Pull(engine.Query(ctx, "sibling", "john", "?S"))
	defer stop()

	if !engine.Exists(ctx, "parent", "tom", "mary") {
		t.Error("interleaved query failed")
	}

	sol, ok := next()
	if !ok || !term.Equal(sol["?S"], term.Atom("mary")) {
		t.Errorf("first query disturbed by second: %v (ok=%v)", sol, ok)
	}
}

func TestQueryOneStopsSuspendingBuiltins(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"n": 1}`))
	}))
	defer srv.Close()

	base, err := config.ParseKnowledge([]byte(`
facts:
  - source("` + srv.URL + `")
  - source("` + srv.URL + `")
  - source("` + srv.URL + `")
rules:
  - head: doc(?D)
    body:
      - source(?U)
      - http_get_json(?U, ?D)
`))
	if err != nil {
		t.Fatalf("parse knowledge: %v", err)
	}

	fetcher := builtin.NewFetcher(&webfetch.Client{HTTPClient: srv.Client()}, nil)
	engine := New(Options{KB: base, Builtins: builtin.Default(fetcher)})

	sol, ok := engine.QueryOne(context.Background(), "doc", "?D")
	if !ok {
		t.Fatal("expected a solution")
	}
	want := term.Structured{Value: map[string]any{"n": float64(1)}}
	if !term.Equal(sol["?D"], want) {
		t.Errorf("?D = %v, want %v", sol["?D"], want)
	}
	if hits.Load() != 1 {
		t.Errorf("QueryOne must stop after the first fetch, server saw %d", hits.Load())
	}
}

func TestSuspendingBuiltinFailureIsAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // unreachable from here on

	engine := New(Options{})
	if _, ok := engine.QueryOne(context.Background(), "http_get_json", term.Text(url), "?R"); ok {
		t.Error("unreachable location should produce no solution")
	}
}

func TestQueryArgumentConversion(t *testing.T) {
	base, err := config.ParseKnowledge([]byte(`
facts:
  - entry(tom, 42, "hello")
`))
	if err != nil {
		t.Fatalf("parse knowledge: %v", err)
	}
	engine := New(Options{KB: base})
	ctx := context.Background()

	if !engine.Exists(ctx, "entry", "tom", 42, term.Text("hello")) {
		t.Error("converted arguments should match the fact")
	}
	// An atom is not a text value.
	if engine.Exists(ctx, "entry", "tom", 42, "hello") {
		t.Error("atom argument must not match a text fact")
	}
}

func TestNilOptionsGiveWorkingEngine(t *testing.T) {
	engine := New(Options{})
	if engine.KB() == nil || engine.Builtins() == nil {
		t.Fatal("defaults missing")
	}
	// Default registry carries neq.
	if !engine.Exists(context.Background(), "neq", "a", "b") {
		t.Error("neq(a, b) should hold on a default engine")
	}
}
