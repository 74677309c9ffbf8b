package types

// ModelInfo describes a chat-capable model installed on the model daemon.
type ModelInfo struct {
	// Model name as reported by the daemon.
	// example: llama3.2:latest
	Name string `json:"name" example:"llama3.2:latest"`
	// Size on disk in bytes.
	// example: 2019393189
	Size uint64 `json:"size" example:"2019393189"`
	// Last modification time reported by the daemon.
	// example: 2024-10-01T12:00:00.000000000Z
	ModifiedAt string `json:"modified_at" example:"2024-10-01T12:00:00.000000000Z"`
}
