// handlers/handlers.go
package handlers

import (
	"isip/store"
)

var (
	ideaStore store.IdeaStore
	userStore store.UserStore
)

// Init wires the storage implementations used by every handler in this
// package. Called once from main, or from tests with in-memory fakes.
func Init(ideas store.IdeaStore, users store.UserStore) {
	ideaStore = ideas
	userStore = users
}
