// Package state persists stylesheet snapshots behind a small Store contract.
//
// A Store only loads and saves one snapshot for one Ref. Manager layers the
// workflow on top: load, mutate, validate, save with optimistic concurrency
// on the ETag, then announce the new snapshot through activity hooks.
//
// Data flow:
//
//	Store.Load -> Mutator -> Validate -> Store.Save -> activity.BuildSnapshotSavedEvent
//
// Keys:
//
//	Ref.Identifier() is "<document>#<part>", with the part defaulting to
//	xl/styles.xml. Adapters that persist elsewhere should keep that format so
//	snapshots stay addressable across stores.
package state
