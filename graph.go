package main

// GraphNode is the model-side metadata of a node, independent of how it is drawn.
type GraphNode struct {
	ID      string
	Title   string
	Inputs  []string
	Outputs []string
}

// GraphListener is told about nodes entering and leaving a GraphRegistry.
type GraphListener interface {
	GraphNodeAdded(n GraphNode)
	GraphNodeRemoved(id string)
}

// GraphRegistry is an id-keyed store of GraphNodes.
type GraphRegistry struct {
	nodes     map[string]GraphNode
	order     []string
	listeners []GraphListener
}

func NewGraphRegistry() *GraphRegistry {
	return &GraphRegistry{nodes: make(map[string]GraphNode)}
}

func (r *GraphRegistry) Subscribe(l GraphListener) {
	r.listeners = append(r.listeners, l)
}

// Add stores n. It reports false if the id is empty or already present.
func (r *GraphRegistry) Add(n GraphNode) bool {
	if n.ID == "" {
		return false
	}
	if _, ok := r.nodes[n.ID]; ok {
		return false
	}
	r.nodes[n.ID] = n
	r.order = append(r.order, n.ID)
	for _, l := range r.listeners {
		l.GraphNodeAdded(n)
	}
	return true
}

func (r *GraphRegistry) Remove(id string) bool {
	if _, ok := r.nodes[id]; !ok {
		return false
	}
	delete(r.nodes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, l := range r.listeners {
		l.GraphNodeRemoved(id)
	}
	return true
}

func (r *GraphRegistry) Get(id string) (GraphNode, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

func (r *GraphRegistry) Contains(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// IDs returns the ids in insertion order.
func (r *GraphRegistry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *GraphRegistry) Len() int {
	return len(r.order)
}

// GraphBridge keeps a Canvas and a GraphRegistry holding the same set of ids.
// Creating or deleting on either side is mirrored on the other.
type GraphBridge struct {
	canvas   *Canvas
	registry *GraphRegistry
	place    func(GraphNode) Vec
}

// NewGraphBridge links canvas and registry and reconciles what each already
// holds. place chooses the world position of nodes that originate in the
// registry; nil places them at the centre of the viewport.
func NewGraphBridge(canvas *Canvas, registry *GraphRegistry, place func(GraphNode) Vec) *GraphBridge {
	b := &GraphBridge{canvas: canvas, registry: registry, place: place}
	if b.place == nil {
		b.place = b.viewportCenter
	}

	for _, n := range canvas.Nodes() {
		b.NodeAdded(n)
	}
	for _, id := range registry.IDs() {
		n, _ := registry.Get(id)
		b.GraphNodeAdded(n)
	}

	canvas.AddObserver(b)
	registry.Subscribe(b)
	return b
}

func (b *GraphBridge) viewportCenter(GraphNode) Vec {
	vp := b.canvas.Viewport()
	return b.canvas.Camera().ScreenToWorld(Vec{float64(vp.Width) / 2, float64(vp.Height) / 2})
}

func (b *GraphBridge) NodeAdded(n *NodeItem) {
	if b.registry.Contains(n.ID()) {
		return
	}
	b.registry.Add(GraphNode{ID: n.ID(), Title: n.Title()})
}

func (b *GraphBridge) NodeRemoved(id string) {
	b.registry.Remove(id)
}

func (b *GraphBridge) GraphNodeAdded(n GraphNode) {
	if _, ok := b.canvas.Node(n.ID); ok {
		return
	}
	b.canvas.AddNodeWithID(n.ID, b.place(n), n.Title)
}

func (b *GraphBridge) GraphNodeRemoved(id string) {
	b.canvas.RemoveNode(id)
}
