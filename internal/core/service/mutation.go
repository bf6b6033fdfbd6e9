package service

// changeSet accumulates field-level differences for one audit entry. Field
// names follow the domain entity's JSON names so the history view lines up
// with the documents it describes.
type changeSet struct {
	changes  map[string]any
	previous map[string]any
}

func newChangeSet() *changeSet {
	return &changeSet{
		changes:  make(map[string]any),
		previous: make(map[string]any),
	}
}

// set records a field's new value unconditionally (create path).
func (c *changeSet) set(field string, value any) {
	c.changes[field] = value
}

// diff records a field only when its value actually changed (update path).
func (c *changeSet) diff(field string, oldVal, newVal any) {
	if oldVal == newVal {
		return
	}
	c.changes[field] = newVal
	c.previous[field] = oldVal
}

func (c *changeSet) empty() bool {
	return len(c.changes) == 0
}
