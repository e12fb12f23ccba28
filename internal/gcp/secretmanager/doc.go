// Package secretmanager is the Google Cloud Secret Manager service: a
// stack of browsable screens (secrets, versions, payload, plus metadata
// views) over an async store.
//
// The package follows the single-funnel service contract. Key handling
// only queues messages; process drains them one at a time and is the one
// place that mutates navigation state, touches caches, or emits
// commands. Commands run outside the event loop against the Store
// interface and post their results back into the same queue, so a
// network failure and a user keypress travel the exact same path.
package secretmanager
