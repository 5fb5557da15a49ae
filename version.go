package monkeypatch

// Version is the module version, overridden at build time with
// -ldflags "-X github.com/NotAdityaPawar/monkeypatch.Version=...".
var Version = "dev"
