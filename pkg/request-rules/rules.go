package requestrules

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rules decide which requests may have their response rewritten.
// The first matching rule wins.
type Rules []Rule

type Rule struct {
	Prefix string            `yaml:"prefix"`
	Path   string            `yaml:"path"`
	Method string            `yaml:"method"`
	Host   string            `yaml:"host"`
	Query  map[string]string `yaml:"query"`
	// Bypass leaves matching requests alone.
	// A bypass rule without a method matches every method.
	Bypass bool `yaml:"bypass"`
}

// Eligible reports whether the response to r may be rewritten.
// Without a matching rule every request is eligible.
func (r Rules) Eligible(req *http.Request) bool {
	if rule := r.Find(req); rule != nil {
		return !rule.Bypass
	}
	return true
}

// Find returns the first rule matching req, or nil.
func (r Rules) Find(req *http.Request) *Rule {
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for _, rule := range r {
		log.Trace().Msgf("Checking rule %+v", rule)
		if rule.Method == "" && !rule.Bypass && req.Method != http.MethodGet && req.Method != http.MethodHead {
			continue
		}
		if rule.Method != "" && !strings.EqualFold(rule.Method, req.Method) {
			continue
		}
		if rule.Host != "" && !strings.EqualFold(rule.Host, hostname(req)) {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		rule := rule
		return &rule
	}
	return nil
}

func hostname(req *http.Request) string {
	host := req.Host
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.HasSuffix(host, "]") {
		host = host[:i]
	}
	return host
}
