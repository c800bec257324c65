// Package store persists babel projects.
//
// Two kinds of storage live here:
//
//   - Project files: the whole project as indented JSON (.json) or YAML
//     (.yaml, .yml). Tombstoned slots are written as null so indices survive
//     a round trip. Writes go to a temp file that is renamed into place.
//   - Derivation log: an optional SQLite database holding project snapshots
//     and one row per successful derivation.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s for locks
//   - user_version: schema migrations applied in order on Open
//
// All reads order by seq ASC, the autoincrement key, never by wall time.
package store
