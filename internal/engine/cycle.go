package engine

import (
	"fmt"

	"github.com/roach88/babel/internal/ir"
)

// Ancestry walks the ancestor pointers starting at lang and returns the
// chain of language indices, lang first and the root last.
//
// Example: Modern derives from Middle derives from Old
//
//	Ancestry(p, modern) → [modern, middle, old]
//
// A chain that revisits a language fails with ANCESTOR_CYCLE. A pointer to
// a missing or removed language ends the chain with a lookup error.
func Ancestry(p *ir.Project, lang int) ([]int, error) {
	if _, err := p.Language(lang); err != nil {
		return nil, err
	}
	chain := []int{lang}
	seen := map[int]bool{lang: true}
	cur := lang
	for {
		l, err := p.Language(cur)
		if err != nil {
			return chain, fmt.Errorf("ancestor of language %d: %w", chain[len(chain)-2], err)
		}
		if l.Ancestor == nil {
			return chain, nil
		}
		next := *l.Ancestor
		if seen[next] {
			return chain, NewCycleError(lang, next, append(chain, next))
		}
		seen[next] = true
		chain = append(chain, next)
		cur = next
	}
}

// wouldCycle reports whether pointing lang at ancestor closes a loop: that
// is, whether lang already appears in ancestor's own chain. It returns the
// chain walked for diagnostics.
func wouldCycle(p *ir.Project, lang, ancestor int) ([]int, bool) {
	chain := []int{ancestor}
	seen := map[int]bool{ancestor: true}
	cur := ancestor
	for {
		l := p.Languages.Slot(cur)
		if l == nil || l.Ancestor == nil {
			return chain, false
		}
		next := *l.Ancestor
		chain = append(chain, next)
		if next == lang {
			return chain, true
		}
		if seen[next] {
			// Pre-existing loop above ancestor that does not include lang.
			return chain, false
		}
		seen[next] = true
		cur = next
	}
}
