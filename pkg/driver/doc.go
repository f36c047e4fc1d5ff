/*
Package driver plays a prepared simulation under user control.

A Driver owns the current tick cursor of one simulation instance and moves
through the status machine

	idle -> running -> (paused <-> running) -> complete

Play, Pause, Step, Reset, SetSpeed and SelectScenario are safe for
concurrent use. While running, a single ticker goroutine consumes one step
per interval; every stop bumps a generation counter so a tick that was
already in flight is discarded instead of applied.

Snapshots are published synchronously and in order to subscribers and then
to the lifecycle hooks. Callbacks run outside the state lock and may read
the driver, but must not call its control methods.
*/
package driver
