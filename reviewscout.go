// Package reviewscout turns raw snapshots of third-party review pages into
// structured review records and labels each record as relevant or not to a
// single subject of interest.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package reviewscout
