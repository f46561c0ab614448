package engine

import (
	"sort"

	"github.com/pilahlab/pilah/internal/kb"
)

// TraceEntry records one rule firing. Steps start at 1 and increase
// monotonically in firing order; entries are append-only.
type TraceEntry struct {
	Step       int      `json:"step"`
	RuleID     string   `json:"rule_id"`
	Conditions []string `json:"if"`
	Conclusion string   `json:"then"`
	Priority   int      `json:"priority"`
}

// Result is the outcome of one inference run.
type Result struct {
	// Initial is the sorted initial fact set the run started from.
	Initial []string `json:"initial_facts"`
	// Inferred is the sorted fixed-point fact set; always a superset
	// of Initial.
	Inferred []string `json:"inferred"`
	// Derived lists only the newly derived facts, in derivation order.
	Derived []string `json:"new_facts"`
	// Trace lists every rule firing in order.
	Trace []TraceEntry `json:"trace"`
}

// Fired reports whether any rule fired during the run.
func (r *Result) Fired() bool {
	return len(r.Trace) > 0
}

// Run computes the forward-chaining fixed point of rules over the
// initial facts. Rules are evaluated in priority-descending,
// id-ascending order; after every firing the scan restarts from the
// top, so higher-priority rules always get first opportunity to fire
// on newly derived facts. A rule whose conclusion is already a known
// fact never fires, which caps each rule at one firing per run and
// guarantees termination.
//
// Both rules and initial facts are expected to hold canonical tokens
// (kb.Normalize), which the stores enforce at construction. An empty
// rule set or fact set is not an error: the result is the initial
// facts unchanged with an empty trace.
func Run(rules []kb.Rule, initial []string) Result {
	ordered := make([]kb.Rule, len(rules))
	copy(ordered, rules)
	kb.SortRules(ordered)

	inferred := make(map[string]struct{}, len(initial))
	for _, f := range initial {
		inferred[f] = struct{}{}
	}

	res := Result{Initial: sortedKeys(inferred)}

	step := 1
	for {
		fired := false
		for _, r := range ordered {
			if _, known := inferred[r.Conclusion]; known {
				continue
			}
			if !satisfied(r, inferred) {
				continue
			}
			inferred[r.Conclusion] = struct{}{}
			res.Derived = append(res.Derived, r.Conclusion)
			res.Trace = append(res.Trace, TraceEntry{
				Step:       step,
				RuleID:     r.ID,
				Conditions: r.Conditions,
				Conclusion: r.Conclusion,
				Priority:   r.Priority,
			})
			step++
			fired = true
			break // restart from the top of the ordered list
		}
		if !fired {
			break
		}
	}

	res.Inferred = sortedKeys(inferred)
	return res
}

func satisfied(r kb.Rule, facts map[string]struct{}) bool {
	for _, c := range r.Conditions {
		if _, ok := facts[c]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
