package eye

import (
	"encoding/json"
)

// SampleReport is a trimmed `eye i -j` dump with two applications: "test"
// with process "sample" in the default group, and "test2" with process
// "sample" in group "samples".
const SampleReport = `{"subtree":[` +
	`{"name":"test","type":"application","subtree":[` +
	`{"name":"__default__","type":"group","subtree":[` +
	`{"name":"sample","state":"up","type":"process","resources":{"memory":19062784,"cpu":0.0,"start_time":1501570046,"pid":11731},"state_changed_at":1501570049,"state_reason":"monitor by user"}]}],"debug":null},` +
	`{"name":"test2","type":"application","subtree":[` +
	`{"name":"samples","type":"group","subtree":[` +
	`{"name":"sample","state":"starting","type":"process","resources":{"memory":null,"cpu":null,"start_time":null,"pid":null},"state_changed_at":1501570056,"state_reason":"start by user"}]}],"debug":null}]}`

// ReportBuilder assembles eye info dumps for tests
type ReportBuilder struct {
	apps []Node
}

// NewReportBuilder creates an empty ReportBuilder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Process adds a process, creating its application and group as needed.
// An empty group means DefaultGroup; an empty state omits the state field.
func (b *ReportBuilder) Process(application, group, process, state string) *ReportBuilder {
	if group == "" {
		group = DefaultGroup
	}

	app := b.node(&b.apps, application, TypeApplication)
	grp := b.node(&app.Subtree, group, TypeGroup)

	prc := Node{Name: process, Type: TypeProcess}
	if state != "" {
		s := state
		prc.State = &s
	}
	grp.Subtree = append(grp.Subtree, prc)
	return b
}

// Node appends a raw root node, allowing duplicate or mistyped entries
func (b *ReportBuilder) Node(n Node) *ReportBuilder {
	b.apps = append(b.apps, n)
	return b
}

// String renders the report as eye prints it
func (b *ReportBuilder) String() string {
	apps := b.apps
	if apps == nil {
		apps = []Node{}
	}
	data, err := json.Marshal(map[string][]Node{"subtree": apps})
	if err != nil {
		panic(err)
	}
	return string(data)
}

func (b *ReportBuilder) node(list *[]Node, name, typ string) *Node {
	for i := range *list {
		if (*list)[i].Name == name && (*list)[i].Type == typ {
			return &(*list)[i]
		}
	}
	*list = append(*list, Node{Name: name, Type: typ})
	return &(*list)[len(*list)-1]
}
