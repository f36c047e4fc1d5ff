/*
Package domain contains the core data model shared by every simulation, the
animation driver and the hosts.

It is kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Header: Tick, Phase, Step and Log carried by every snapshot.
  - Snapshot: any simulation state embedding a Header.
  - Step: the record of one transition (what changed and why).
  - Module / Domain: the static navigation catalog.
  - Session: the persisted position of a driver (module, scenario, seed, cursor).
*/
package domain
