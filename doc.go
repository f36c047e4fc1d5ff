/*
Package algoviz is a library of deterministic, step-driven algorithm animations.

Every simulation turns a fixed input into a finite, replayable sequence of
immutable snapshots. A driver plays that sequence under play, pause, step,
reset, speed and scenario control, and publishes each snapshot to its
subscribers in order. Renderers only ever consume snapshots.

# Concept

A simulation is prepared once from a named preset and a seed. Randomness is
drawn during preparation only, so generating twice from the same prepared
instance yields the same trace:

	lab, err := algoviz.New()
	if err != nil {
		log.Fatal(err)
	}

	states, err := lab.Trace(algoviz.Request{Module: "kruskal"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(states[len(states)-1].Head().Phase)

# Playback

Open returns a driver that advances on a ticker whose interval is the base
interval divided by the speed factor:

	d, err := lab.Open(algoviz.Request{Module: "bfs", Speed: 2})
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	unsubscribe := d.Subscribe(func(s domain.Snapshot) {
		fmt.Println(s.Head().Tick, s.Head().Step.Description)
	})
	defer unsubscribe()
	_ = d.Play()

# Hosts

The algoviz command ships a terminal player, a JSON trace exporter, a
Mermaid graph exporter and an HTTP server with a server-sent events stream.
Sessions served over HTTP are persisted as (module, scenario, seed, cursor)
records and restored by replaying the same number of ticks.
*/
package algoviz
