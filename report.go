package eye

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one entry of the eye info tree. Applications contain groups,
// groups contain processes. State is only reported for processes and is
// nil when eye omitted it.
type Node struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	State   *string `json:"state,omitempty"`
	Subtree []Node  `json:"subtree,omitempty"`
}

// Report is a decoded `eye i -j` dump. It is built per query and never cached.
type Report struct {
	// Applications are the root nodes in report order
	Applications []Node
}

type rawReport struct {
	Subtree *[]Node `json:"subtree"`
}

// ParseReport decodes the JSON printed by `eye i -j`.
// Any output that is not a JSON object with a "subtree" array returns an
// error wrapping ErrDecode.
func ParseReport(text string) (*Report, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrDecode)
	}

	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw.Subtree == nil {
		return nil, fmt.Errorf("%w: missing subtree", ErrDecode)
	}

	return &Report{Applications: *raw.Subtree}, nil
}

// Resolve returns the state of the addressed process in report text, or
// StateUnknown if the text is malformed or the process is not found.
func Resolve(text, application, group, process string) string {
	report, err := ParseReport(text)
	if err != nil {
		return StateUnknown
	}
	return report.Resolve(application, group, process)
}

// ListApplications returns the name of every root node in report order.
// Malformed text yields an empty list.
func ListApplications(text string) []string {
	report, err := ParseReport(text)
	if err != nil {
		return []string{}
	}
	return report.ApplicationNames()
}

// ApplicationNames returns the names of all root nodes, duplicates included.
func (r *Report) ApplicationNames() []string {
	names := make([]string, 0, len(r.Applications))
	for _, app := range r.Applications {
		names = append(names, app.Name)
	}
	return names
}

// Resolve walks the matching applications and groups in report order and
// returns the first process state found. An empty application matches every
// root node; an empty group means DefaultGroup.
//
// Names are not assumed unique: the first structurally matching hit wins.
func (r *Report) Resolve(application, group, process string) string {
	if group == "" {
		group = DefaultGroup
	}

	for _, app := range r.Applications {
		if application != "" && !app.matches(application, TypeApplication) {
			continue
		}
		for _, grp := range app.Subtree {
			if !grp.matches(group, TypeGroup) {
				continue
			}
			if state := grp.processState(process); state != StateUnknown {
				return state
			}
		}
	}

	return StateUnknown
}

func (n *Node) matches(name, typ string) bool {
	return n.Name == name && n.Type == typ
}

// processState looks only at the first process named name in the group
func (n *Node) processState(name string) string {
	for i := range n.Subtree {
		prc := &n.Subtree[i]
		if !prc.matches(name, TypeProcess) {
			continue
		}
		if prc.State == nil {
			return StateUnknown
		}
		return *prc.State
	}
	return StateUnknown
}

// ProcessKey builds the colon-joined address eye accepts for stop.
// An empty group is omitted entirely.
func ProcessKey(application, group, process string) string {
	if group == "" {
		return application + ":" + process
	}
	return application + ":" + group + ":" + process
}
