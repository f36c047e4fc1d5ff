/*
Package session owns live animation drivers and their persisted records.

A Manager keys every driver by a uuid session id. After each control call the
driver position is written to a ports.SessionStore as a domain.Session. Because
simulations are deterministic, a session can be rebuilt on another replica (or
after a restart) by preparing the same module and scenario with the stored
seed and fast-forwarding to the stored cursor.

Per-session access is serialized by ref-counted local locks and, optionally,
by a ports.DistributedLocker.
*/
package session
