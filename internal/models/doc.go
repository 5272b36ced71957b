// Package models defines the domain types of the music brief client and its persistence interfaces.
//
// There are two kinds of types:
//
// 1. Values exchanged with the generation API
//   - [Brief] : the generated brief, an immutable JSON object kept in document order
//   - [Block] : one renderable line of a brief section, produced by the formatter
//
// 2. Persistent entities
//   - [BriefRecord] : a generated brief saved to local history
//
// Persistent entities implement [Model]; [Repository] describes their storage.
package models
