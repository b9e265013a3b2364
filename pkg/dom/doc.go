// Package dom implements the DOM extraction and compression core.
//
// The package turns a snapshot of a live, possibly shadow-DOM-bearing
// document into a compact, deterministic tree that is small enough to hand
// to a downstream consumer while preserving the semantically relevant
// structure and content.
//
// # Pipeline
//
// A Snapshot is captured first, either inside the page (CaptureScript
// evaluated through an Evaluator, which records shadow roots and slot
// assignment) or from static HTML (FromHTML, light DOM only). Extract then
// walks the snapshot depth-first: noise subtrees are pruned, re-projected
// (slotted) elements are emitted exactly once under their slot, attributes
// are cleaned, form-control values are captured, and every kept element is
// assigned a monotonically increasing identifier. Serialize renders the
// resulting tree either as structured JSON or as indented pseudo-markup.
//
// # Ownership
//
// The extracted tree holds no reference back into the snapshot or the live
// page. Each Extract call owns its own identifier counter, so separate
// extractions never interfere.
package dom
