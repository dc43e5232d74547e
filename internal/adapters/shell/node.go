package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jmgilman/go/exec"
)

// NodeID is the graft node providing the base command executor.
const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[exec.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (exec.Executor, error) {
			return exec.New(exec.WithInheritEnv(), exec.WithDisableColors()), nil
		},
	})
}
