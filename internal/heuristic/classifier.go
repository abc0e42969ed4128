package heuristic

import (
	"strings"

	"github.com/moltbook/decomposer/internal/plan"
)

// domainEntry pairs a domain tag with its keyword patterns. The table is a
// slice, not a map: classification iterates it in declaration order so the
// same input always yields the same domain order (deterministic
// tie-breaking is a documented requirement of the classifier).
type domainEntry struct {
	domain   plan.Domain
	keywords []string
}

// domainTable maps each domain to the keywords that signal it. A domain is
// detected when any of its keywords occurs as a case-insensitive substring
// of the input.
var domainTable = []domainEntry{
	{plan.DomainTrading, []string{"trade", "buy", "sell", "price", "market", "portfolio", "balance", "order"}},
	{plan.DomainCoding, []string{"code", "script", "function", "api", "implement", "build", "create", "fix", "bug"}},
	{plan.DomainResearch, []string{"research", "find", "search", "learn", "understand", "analyze", "study"}},
	{plan.DomainWriting, []string{"write", "document", "draft", "compose", "summarize", "explain"}},
	{plan.DomainDevops, []string{"deploy", "server", "service", "monitor", "backup", "config", "setup"}},
	{plan.DomainSocial, []string{"post", "tweet", "reply", "engage", "moltbook", "share"}},
	{plan.DomainData, []string{"data", "database", "query", "fetch", "store", "process"}},
}

// actionVerbs is the fixed list of action verbs the classifier detects,
// with the same case-insensitive substring semantics as the domain table.
var actionVerbs = []string{
	"build", "create", "implement", "write", "design", "setup",
	"fetch", "get", "find", "search", "analyze", "calculate",
	"send", "post", "share", "update", "modify", "fix",
	"monitor", "check", "verify", "test", "deploy", "configure",
}

// effortEstimates is the per-domain effort lookup, in minutes.
var effortEstimates = map[plan.Domain]int{
	plan.DomainTrading:  5,
	plan.DomainCoding:   15,
	plan.DomainResearch: 10,
	plan.DomainWriting:  10,
	plan.DomainDevops:   20,
	plan.DomainSocial:   5,
	plan.DomainData:     10,
	plan.DomainUnknown:  10,
}

// Classify maps free text to the set of domains it touches and the action
// verbs it contains. Domains come back in domain-table declaration order,
// never in order of occurrence in the text. If nothing matches, the result
// is the single domain "unknown" — never an empty set.
//
// Classify is a pure function: no side effects, deterministic for
// identical input.
func Classify(text string) ([]plan.Domain, []string) {
	lower := strings.ToLower(text)

	var domains []plan.Domain
	for _, entry := range domainTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				domains = append(domains, entry.domain)
				break
			}
		}
	}
	if len(domains) == 0 {
		domains = []plan.Domain{plan.DomainUnknown}
	}

	var actions []string
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			actions = append(actions, verb)
		}
	}

	return domains, actions
}

// PrimaryDomain returns the first detected domain for the text, falling
// back to "unknown". Used for per-segment tagging during synthesis.
func PrimaryDomain(text string) plan.Domain {
	domains, _ := Classify(text)
	return domains[0]
}

// EffortEstimate returns the effort estimate in minutes for a domain,
// defaulting to the unknown-domain constant for unrecognized tags.
func EffortEstimate(d plan.Domain) int {
	if est, ok := effortEstimates[d]; ok {
		return est
	}
	return effortEstimates[plan.DomainUnknown]
}
