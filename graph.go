package rdf

// Graph is an immutable, unordered set of triples, with O(1) amortized
// lookup on each of subject, predicate and object via term-to-triple-id
// indices. Duplicate triples added via NewGraph or Merge are idempotent.
type Graph struct {
	triples []Triple
	bySubj  map[string][]int
	byPred  map[string][]int
	byObj   map[string][]int
}

func tripleKey(t Triple) string {
	return t.Subj.String() + " " + t.Pred.String() + " " + t.Obj.String()
}

// NewGraph builds a Graph from the given triples, discarding duplicates.
func NewGraph(triples ...Triple) *Graph {
	g := &Graph{
		bySubj: make(map[string][]int),
		byPred: make(map[string][]int),
		byObj:  make(map[string][]int),
	}
	seen := make(map[string]bool, len(triples))
	for _, t := range triples {
		k := tripleKey(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		g.index(t)
	}
	return g
}

// index appends t to the graph and records it in the three position
// indices. It assumes t is not already present.
func (g *Graph) index(t Triple) {
	id := len(g.triples)
	g.triples = append(g.triples, t)
	g.bySubj[t.Subj.String()] = append(g.bySubj[t.Subj.String()], id)
	g.byPred[t.Pred.String()] = append(g.byPred[t.Pred.String()], id)
	g.byObj[t.Obj.String()] = append(g.byObj[t.Obj.String()], id)
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns every triple in the graph. The returned slice must not
// be mutated.
func (g *Graph) Triples() []Triple { return g.triples }

// Find returns every triple matching the given pattern. A nil argument in
// any position acts as a wildcard for that position.
func (g *Graph) Find(s Subject, p Predicate, o Object) []Triple {
	var sets [][]int
	if s != nil {
		sets = append(sets, g.bySubj[s.String()])
	}
	if p != nil {
		sets = append(sets, g.byPred[p.String()])
	}
	if o != nil {
		sets = append(sets, g.byObj[o.String()])
	}
	if len(sets) == 0 {
		return g.triples
	}

	ids := intersectIDs(sets)
	out := make([]Triple, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.triples[id])
	}
	return out
}

// intersectIDs returns the sorted intersection of one or more id sets.
// id sets come from index slices, which are append-ordered (ascending).
// Each id of the smallest set is kept if a linear scan finds it in every
// other set, so the cost is the smallest set's size times the others'.
func intersectIDs(sets [][]int) []int {
	smallest := 0
	for i, s := range sets {
		if len(s) < len(sets[smallest]) {
			smallest = i
		}
	}
	candidates := sets[smallest]
	others := make([][]int, 0, len(sets)-1)
	for i, s := range sets {
		if i != smallest {
			others = append(others, s)
		}
	}

	var out []int
	for _, id := range candidates {
		inAll := true
		for _, s := range others {
			if !containsID(s, id) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Without returns a new Graph containing every triple of g except those
// present in remove.
func (g *Graph) Without(remove ...Triple) *Graph {
	drop := make(map[string]bool, len(remove))
	for _, t := range remove {
		drop[tripleKey(t)] = true
	}
	kept := make([]Triple, 0, len(g.triples))
	for _, t := range g.triples {
		if !drop[tripleKey(t)] {
			kept = append(kept, t)
		}
	}
	return NewGraph(kept...)
}

// Merge returns a new Graph containing the union of g's and other's
// triples.
func (g *Graph) Merge(other *Graph) *Graph {
	all := make([]Triple, 0, len(g.triples)+len(other.triples))
	all = append(all, g.triples...)
	all = append(all, other.triples...)
	return NewGraph(all...)
}
