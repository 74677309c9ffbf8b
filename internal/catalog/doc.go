// Package catalog turns the daemon's installed-model list into the set of
// chat-capable models served by the API. It is structured into small files:
//
//   - service.go: Service, ListChatModels, Ready.
//   - config.go: Config and package defaults; New applies defaults.
//   - errors.go: error types and helpers (IsUpstreamUnavailable, IsNoQualifyingModels).
//   - events.go: EventPublisher and the noop default.
//   - eventpub_memory.go: in-memory publisher for tests.
//
// The catalog is fetched on every call; nothing is cached.
package catalog
