// Package classifier decides whether a model installed on the model daemon is
// chat-capable or embedding-only. The decision is made by an ordered pipeline
// of stages:
//
//   - name: the lower-cased model name contains an embedding indicator.
//   - size: the model is smaller than the minimum chat size (400 MB default).
//   - metadata: the daemon's Modelfile mentions "embed". The probe is
//     best-effort; failures are logged and ignored.
//
// The first stage that excludes a model decides; a model no stage excludes is
// treated as a chat model. A Classifier holds no mutable state and may be used
// from many goroutines.
package classifier
