package builtin

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/cognicore/siamese/internal/webfetch"
	"github.com/cognicore/siamese/pkg/siamese/term"
	"github.com/cognicore/siamese/pkg/siamese/unify"
)

// Fetcher provides the suspending fetch builtins. External failures
// (network, status, parsing) are absorbed into zero solutions; only the
// trace log sees them.
type Fetcher struct {
	client *webfetch.Client
	log    *zap.Logger
}

// NewFetcher wraps client into a Fetcher. A nil client gets default
// settings; a nil logger disables tracing.
func NewFetcher(client *webfetch.Client, log *zap.Logger) *Fetcher {
	if client == nil {
		client = &webfetch.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, log: log}
}

// GetJSON implements http_get_json/2: a Text location and an unbound
// output variable. On success the decoded JSON document is unified with
// the output variable as a Structured term.
func (f *Fetcher) GetJSON(ctx context.Context, goal term.Goal, b term.Bindings) iter.Seq[term.Bindings] {
	return f.fetch(ctx, goal, b, func(ctx context.Context, url string) (term.Term, error) {
		value, err := f.client.GetJSON(ctx, url)
		if err != nil {
			return nil, err
		}
		return term.Structured{Value: value}, nil
	})
}

// PageTitle implements http_page_title/2: a Text location and an
// unbound output variable, unified with the page's title as Text.
func (f *Fetcher) PageTitle(ctx context.Context, goal term.Goal, b term.Bindings) iter.Seq[term.Bindings] {
	return f.fetch(ctx, goal, b, func(ctx context.Context, url string) (term.Term, error) {
		title, err := f.client.PageTitle(ctx, url)
		if err != nil {
			return nil, err
		}
		return term.Text(title), nil
	})
}

// fetch factors the shared argument checking and absorption policy of
// the fetch builtins. The external operation runs only when the lazy
// sequence is actually pulled, and sees ctx so an abandoned query
// cancels in-flight work.
func (f *Fetcher) fetch(ctx context.Context, goal term.Goal, b term.Bindings, op func(context.Context, string) (term.Term, error)) iter.Seq[term.Bindings] {
	if len(goal.Args) != 2 {
		return none()
	}
	loc, ok := b.Substitute(goal.Args[0]).(term.Text)
	if !ok {
		return none()
	}
	out, ok := b.Walk(goal.Args[1]).(term.Variable)
	if !ok {
		return none()
	}

	return func(yield func(term.Bindings) bool) {
		if ctx.Err() != nil {
			return
		}
		fetched, err := op(ctx, string(loc))
		if err != nil {
			f.log.Debug("fetch builtin failed",
				zap.String("goal", goal.String()),
				zap.Error(err))
			return
		}
		if nb, ok := unify.Unify(out, fetched, b); ok {
			yield(nb)
		}
	}
}
