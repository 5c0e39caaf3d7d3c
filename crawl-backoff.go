package crawlbackoff

import (
	"net/http"
	"strings"
	"sync"

	"github.com/always-cache/crawl-backoff/pkg/hooks"
	requestrules "github.com/always-cache/crawl-backoff/pkg/request-rules"
	hook "github.com/always-cache/crawl-backoff/pkg/response-writer-hook"
	"github.com/always-cache/crawl-backoff/rewriter"
	"github.com/always-cache/crawl-backoff/rfc9110"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
	// Optional lookup of status descriptions.
	// The canonical status texts are used if nil.
	StatusText func(code int) string
	// Only rewrite requests marked with MarkUnresolved.
	// Otherwise any 404 response counts as unresolved.
	ExplicitOnly bool
	// Rules selecting the requests that may be rewritten.
	// All requests are eligible if empty.
	Rules requestrules.Rules
	// Registry to register the hooks with.
	// Use it to share one registry between several middlewares.
	Hooks *hooks.Registry
}

type Backoff struct {
	rewriter     rewriter.StatusRewriter
	hooks        *hooks.Registry
	rules        requestrules.Rules
	explicitOnly bool
	log          zerolog.Logger
	register     sync.Once
}

// New initializes the backoff instance and registers its hooks.
func New(config Config) *Backoff {
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = log.Logger
	} else {
		logger = *config.Logger
	}

	b := &Backoff{
		rewriter:     rewriter.New(config.StatusText),
		hooks:        config.Hooks,
		rules:        config.Rules,
		explicitOnly: config.ExplicitOnly,
		log:          logger.With().Str("component", "crawl-backoff").Logger(),
	}
	if b.hooks == nil {
		b.hooks = hooks.NewRegistry()
	}
	b.Register()
	return b
}

// Register adds the status filter and the finalize action to the registry.
// Only the first call has an effect.
func (b *Backoff) Register() {
	b.register.Do(func() {
		b.hooks.AddStatusFilter(hooks.StatusFilterFunc(b.RewriteStatusLine))
		b.hooks.AddFinalizeAction(hooks.FinalizeActionFunc(b.OnResponseFinalize))
	})
}

// Hooks returns the registry the hooks are registered with.
func (b *Backoff) Hooks() *hooks.Registry {
	return b.hooks
}

// Middleware returns a handler which rewrites responses of unresolved requests
// handled by next into temporary outages.
func (b *Backoff) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.rules.Eligible(r) {
			b.log.Trace().Str("url", r.URL.String()).Msg("Bypassing request")
			next.ServeHTTP(w, r)
			return
		}
		r = withOutcome(r)
		next.ServeHTTP(hook.Wrap(w, r, b.hooks, b.log), r)
	})
}

// RewriteStatusLine is the status filter.
// It returns header unchanged unless the request is unresolved.
func (b *Backoff) RewriteStatusLine(r *http.Request, header string, code int, description, protocol string) string {
	return b.rewriter.DecideStatus(header, code, description, protocol, b.isUnresolved(r, code))
}

// OnResponseFinalize is the finalize action.
// It sets Retry-After on the response of unresolved requests.
func (b *Backoff) OnResponseFinalize(r *http.Request, code int, header http.Header) {
	if b.rewriter.MaybeInjectRetryHeader(header, b.isUnresolved(r, code)) {
		b.logRewrite(r, code)
	} else {
		b.log.Trace().Str("url", r.URL.String()).Int("status", code).Msg("Passing response through")
	}
}

// isUnresolved evaluates the outcome of r the first time it is asked,
// and returns the same answer for the rest of the request.
func (b *Backoff) isUnresolved(r *http.Request, code int) bool {
	if o := outcomeFrom(r); o != nil {
		return o.resolve(code, b.explicitOnly)
	}
	return !b.explicitOnly && code == rfc9110.StatusNotFound
}

func (b *Backoff) logRewrite(r *http.Request, code int) {
	b.log.Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Str("sourceIp", getRequestSourceIp(r)).
		Int("status", code).
		Msg("Rewriting unresolved request to temporary outage")
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	// if not found, return
	if portSepIdx < 0 {
		return ipAndPort
	}
	return strings.Trim(ipAndPort[:portSepIdx], "[]")
}
