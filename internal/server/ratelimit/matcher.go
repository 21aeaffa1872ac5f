package ratelimit

import "strings"

// MatchRule resolves the rule governing one request. Exact path+method
// pairs win over subtree rules (a Path ending in "/" meters everything
// under it). nil means no rule claims the endpoint and the default quota
// applies.
func MatchRule(path, method string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method != method || !strings.HasSuffix(r.Path, "/") {
			continue
		}
		if strings.HasPrefix(path, r.Path) {
			return r
		}
	}

	return nil
}
