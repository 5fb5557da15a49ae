package ports

import "github.com/NotAdityaPawar/monkeypatch/function/entities"

// Host is a patchable instance: it declares the members that shadow
// registered global functions.
type Host interface {
	// HostName identifies the host in errors and logs.
	HostName() string

	// Member returns the declaration of the named member, if the host has one.
	Member(name string) (*entities.Declaration, bool)
}
