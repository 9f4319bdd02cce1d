// Package generation provides interfaces and implementations for turning an
// (audience, topic, count) request into flashcards via an external LLM
// service. It owns the prompt construction and the normalization of the
// model's informally-structured answers, without coupling callers to a
// specific provider.
package generation
