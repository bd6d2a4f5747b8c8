package rdf

// NamedGraph pairs a graph name with the Graph of triples asserted in it.
type NamedGraph struct {
	Name  GraphName
	Graph *Graph
}

// Dataset is a default graph plus zero or more named graphs, the TriG
// data model. Duplicate quads are idempotent.
type Dataset struct {
	def   *Graph
	names map[string]GraphName
	graph map[string][]Triple
}

// NewDatasetFromQuads builds a Dataset from the given quads. A quad whose
// Graph is nil belongs to the default graph.
func NewDatasetFromQuads(quads ...Quad) *Dataset {
	d := &Dataset{
		names: make(map[string]GraphName),
		graph: make(map[string][]Triple),
	}
	var defTriples []Triple
	for _, q := range quads {
		if q.Graph == nil {
			defTriples = append(defTriples, q.Triple)
			continue
		}
		k := q.Graph.String()
		if _, ok := d.names[k]; !ok {
			d.names[k] = q.Graph
		}
		d.graph[k] = append(d.graph[k], q.Triple)
	}
	d.def = NewGraph(defTriples...)
	return d
}

// DefaultGraph returns the dataset's default (unnamed) graph.
func (d *Dataset) DefaultGraph() *Graph { return d.def }

// NamedGraphs returns every named graph in the dataset.
func (d *Dataset) NamedGraphs() []NamedGraph {
	out := make([]NamedGraph, 0, len(d.names))
	for k, name := range d.names {
		out = append(out, NamedGraph{Name: name, Graph: NewGraph(d.graph[k]...)})
	}
	return out
}

// Graph returns the graph named by name, or nil if the dataset has no
// such named graph. Pass a nil name to get the default graph.
func (d *Dataset) Graph(name GraphName) *Graph {
	if name == nil {
		return d.def
	}
	k := name.String()
	if _, ok := d.names[k]; !ok {
		return nil
	}
	return NewGraph(d.graph[k]...)
}

// Quads returns every quad in the dataset, default graph included.
func (d *Dataset) Quads() []Quad {
	var out []Quad
	for _, t := range d.def.Triples() {
		out = append(out, Quad{Triple: t})
	}
	for k, name := range d.names {
		for _, t := range NewGraph(d.graph[k]...).Triples() {
			out = append(out, Quad{Triple: t, Graph: name})
		}
	}
	return out
}
