package function

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
)

// Members is a Host backed by a fixed set of declarations, for instances
// that shadow registered functions with their own methods.
type Members struct {
	name    string
	members *orderedmap.OrderedMap[string, *entities.Declaration]
}

var _ ports.Host = (*Members)(nil)

// NewHost creates a host named name with the given member declarations.
// A later declaration with the same name replaces an earlier one.
func NewHost(name string, decls ...*entities.Declaration) *Members {
	m := &Members{
		name:    name,
		members: orderedmap.New[string, *entities.Declaration](),
	}
	for _, d := range decls {
		if d != nil {
			m.members.Set(d.Name(), d)
		}
	}
	return m
}

// HostName returns the host's name.
func (m *Members) HostName() string {
	if m == nil {
		return ""
	}
	return m.name
}

// Member returns the named member declaration.
func (m *Members) Member(name string) (*entities.Declaration, bool) {
	if m == nil || m.members == nil {
		return nil, false
	}
	return m.members.Get(name)
}

// Names lists member names in declaration order.
func (m *Members) Names() []string {
	if m == nil || m.members == nil {
		return nil
	}
	names := make([]string, 0, m.members.Len())
	for pair := m.members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
