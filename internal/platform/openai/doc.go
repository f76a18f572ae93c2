// Package openai provides a generation.Provider for any OpenAI-compatible
// chat completions API. The defaults target Groq's OpenAI-compatible
// endpoint with a Llama model; pointing llm.base_url elsewhere (OpenAI
// itself, a local gateway) needs no code change.
package openai
