// Package ir provides the shared value types for lenslab.
//
// This package contains type definitions and canonical serialization only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Instructions are plain values; there is no dynamic dispatch
//   - NO float types anywhere - focal lengths and checksums are ints
//   - All JSON tags use snake_case
//   - Snapshots serialize through MarshalCanonical so golden files and
//     stored runs are byte-stable
package ir
