package version

import "fmt"

// Set via -ldflags at build time.
var (
	version = "v0.0.0-dev"
	commit  = "HEAD"
)

type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func Get() Info {
	return Info{
		Version: version,
		Commit:  commit,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}
