// Package model defines the provider‑agnostic Model Gateway used by the agent
// loop to talk to language models.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Normalize tool call representation (ToolDefinition, core.ToolCall)
//   - Facilitate lightweight mocking for tests (ScriptedModel)
//
// Providers (see the openai and anthropic subpackages) implement the Model
// interface so higher layers remain decoupled from vendor SDKs.
package model
