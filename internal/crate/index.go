package crate

// Crate is the in-memory provenance graph plus the lookup indexes the
// queries run against. Indexes are built once from the graph snapshot; a
// caller that appends entities must call BuildIndexes again before the
// next query observes the change. There is no automatic invalidation and
// no locking: a concurrent embedding must serialize rebuilds against
// reads.
type Crate struct {
	graph   []*Entity
	rootDir string

	byID            map[string]*Entity
	actions         []*Entity
	actionsByResult map[string][]string
	actionsByInput  map[string][]string
}

// New builds a crate from an in-memory @graph list. rootDir, when set, is
// the crate directory used to resolve File entities to local paths.
func New(graph []*Entity, rootDir string) *Crate {
	c := &Crate{graph: graph, rootDir: rootDir}
	c.BuildIndexes()
	return c
}

// BuildIndexes (re)builds the lookup structures in a single pass:
//
//   - byID: id -> entity (later records win on duplicate ids)
//   - actions: CreateAction entities in graph order
//   - actionsByResult: entity id -> ids of actions listing it in result
//   - actionsByInput: entity id -> ids of actions listing it in object
//
// Dangling references are indexed as-is; lookups against the entity map
// skip them later. Rebuilding is idempotent.
func (c *Crate) BuildIndexes() {
	c.byID = make(map[string]*Entity, len(c.graph))
	c.actions = c.actions[:0]
	for _, e := range c.graph {
		c.byID[e.ID] = e
		if e.HasType("CreateAction") {
			c.actions = append(c.actions, e)
		}
	}

	c.actionsByResult = make(map[string][]string)
	c.actionsByInput = make(map[string][]string)
	for _, act := range c.actions {
		for _, oid := range act.RefList("result") {
			c.actionsByResult[oid] = append(c.actionsByResult[oid], act.ID)
		}
		for _, oid := range act.RefList("object") {
			c.actionsByInput[oid] = append(c.actionsByInput[oid], act.ID)
		}
	}
}

// Append adds an entity to the graph. The indexes keep serving the old
// snapshot until BuildIndexes is called.
func (c *Crate) Append(e *Entity) {
	c.graph = append(c.graph, e)
}

// Get looks up an entity by id, or nil when absent.
func (c *Crate) Get(id string) *Entity {
	return c.byID[id]
}

// Graph returns the underlying entity list in manifest order.
func (c *Crate) Graph() []*Entity {
	return c.graph
}

// RootDir returns the crate directory, or "" when the crate was built from
// an in-memory graph without a disk location.
func (c *Crate) RootDir() string {
	return c.rootDir
}

// Actions returns the CreateAction entities in graph order.
func (c *Crate) Actions() []*Entity {
	return c.actions
}

// ActionsByResult returns the ids of actions whose result list contains
// the given entity id, in index-construction order. More than one producer
// is legal.
func (c *Crate) ActionsByResult(id string) []string {
	return c.actionsByResult[id]
}

// ActionsByInput returns the ids of actions whose object list contains the
// given entity id, in index-construction order.
func (c *Crate) ActionsByInput(id string) []string {
	return c.actionsByInput[id]
}
