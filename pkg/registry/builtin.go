package registry

import (
	"github.com/aretw0/algoviz/pkg/sim/dp"
	"github.com/aretw0/algoviz/pkg/sim/mst"
	"github.com/aretw0/algoviz/pkg/sim/sched"
	"github.com/aretw0/algoviz/pkg/sim/search"
	"github.com/aretw0/algoviz/pkg/sim/toposort"
	"github.com/aretw0/algoviz/pkg/sim/traversal"
	"github.com/aretw0/algoviz/pkg/sim/vclock"
)

// Builtin returns a registry holding every bundled simulation.
func Builtin() *Registry {
	return NewRegistry(
		search.New(),
		traversal.NewBFS(),
		traversal.NewDFS(),
		toposort.New(),
		mst.NewKruskal(),
		mst.NewPrim(),
		dp.NewLCS(),
		dp.NewKnapsack(),
		dp.NewEditDistance(),
		vclock.New(),
		sched.New(),
		sched.NewCompare(),
	)
}
