// Package scheduler decides which condition a subject runs next and tracks
// trial progress within it.
//
// The scheduler holds no subject state of its own. Every call takes the
// *progress.Subject from a roster the caller owns and mutates it in place;
// persisting those mutations is the caller's job (progress.Save).
//
// Resumption priority: a condition whose entry is complete but still flagged
// LastPlayed is offered ahead of everything else. When several entries carry
// the flag at once, each is front-inserted in catalog order, so the last
// flagged one in catalog order ends up first. That ordering is inherited
// behavior and is pinned by tests rather than redesigned.
package scheduler
