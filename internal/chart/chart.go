package chart

// SubjectBinding names the host entity a chart is durably attached to, e.g.
// (key: "sale_id", type: "Sale").
type SubjectBinding struct {
	Key  string
	Type string
}

// Chart is an immutable compiled statechart. Once returned by a Builder it
// is treated as read-only and may be shared freely across Executions.
type Chart struct {
	Name           string
	SubjectBinding *SubjectBinding
	InitialState   string
	States         map[string]*State
	Participants   []string
}

// StateByName returns the named state or a NoState error. After successful
// Builder.Build this should never fail for any name reachable from the
// chart itself; adapters may still hit it for externally-supplied names.
func (c *Chart) StateByName(name string) (*State, error) {
	s, ok := c.States[name]
	if !ok {
		return nil, NewNoStateError(name)
	}
	return s, nil
}

// Parent returns the parent State of name within this chart, if any.
func (c *Chart) Parent(name string) (*State, bool) {
	parentName, ok := ParentName(name)
	if !ok {
		return nil, false
	}
	s, ok := c.States[parentName]
	return s, ok
}
