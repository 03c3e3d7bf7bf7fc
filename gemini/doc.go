// Package gemini provides a thin client for the Gemini generateContent
// API. ChatModel builds the HTTP request from a structured prompt,
// dispatches it through a pluggable Exchanger, and maps the JSON response
// into typed values. Transport failures never escape ChatModel.Call; only
// validation failures are returned to the caller.
package gemini
