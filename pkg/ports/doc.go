/*
Package ports defines the driven ports (interfaces) of algoviz.

These interfaces decouple session management from concrete backends.

# Key Interfaces

  - SessionStore: persists the domain.Session record of a driver.
  - DistributedLocker: serializes access to one session across replicas.

Adapters can verify themselves with RunSessionStoreContract and
RunLockerContract.
*/
package ports
