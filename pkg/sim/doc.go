/*
Package sim defines the step generator contract shared by every simulation.

A simulation turns a fixed input into a finite, ordered sequence of
snapshots. Inputs are resolved once in Prepare (the only place randomness is
allowed); every Generate call afterwards yields an identical sequence.

Most inputs are small and bounded, so simulations materialize their whole
trace eagerly and hand out cursors over it. A cursor is not restartable:
callers that want to replay build a new generator.
*/
package sim
