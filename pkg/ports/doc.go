/*
Package ports defines the driven ports (interfaces) of the envcheck engine.

These interfaces decouple the checking logic from external implementations,
allowing reports to be kept in memory or shared across replicas through Redis.

# Key Interfaces

  - ReportStore: persists the latest check report per workspace.
  - DistributedLocker: serializes checks of the same workspace across instances.
  - Watchable: signals that schema or env files changed and a re-check is due.
*/
package ports
