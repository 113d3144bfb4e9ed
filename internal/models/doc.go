// Package models defines the core domain models for tabsplit.
//
// # Models
//
//   - Tab: one recorded group outing, with the friends who took part
//   - Friend: one participant in a Tab, including the user themselves
//   - Visual: the optional photo or icon shown for a Tab
//
// Friends are owned by exactly one Tab. They are identified by UUID strings
// and never shared across Tabs; copy a Tab with Clone before handing it to
// code that may mutate it.
//
// # Persistence shape
//
// Tabs serialize to JSON with camelCase keys (restaurantName, totalAmount,
// remindedFriendIDs, ...). The image or icon is stored as two sibling keys,
// imageData (base64) and iconName, at most one of which is populated.
// There is no schema version; a document that fails to decode is treated by
// the tab store as an empty collection.
package models
