// Package models defines the core domain entities for Chorepoint.
//
// # Models
//
//   - User: a family member, either a child or a caregiver
//   - Task: one assignable unit of work with a token reward
//   - Achievement: per-user progress toward a typed milestone
//   - Reward: a catalog entry children spend tokens on
//   - Redemption: a record of a reward being redeemed
//
// # Design Principles
//
//  1. **Immutable values**: state transitions (completing a task, updating
//     achievement progress) return a new copy; the receiver is never
//     mutated. Callers persist the returned value.
//  2. **No infrastructure imports**: models are plain structs plus pure
//     methods. Storage, transport, and logging stay outside.
//  3. **IDs are strings**: UUIDs assigned by the storage layer on insert,
//     avoiding cyclic references between entities.
package models
