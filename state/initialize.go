package state

import (
	_ "embed"
	"time"
)

//go:embed snippets.yaml
var defaultSnippets []byte

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:           time.Now(),
		DefaultSnippets: defaultSnippets,
	}
}
