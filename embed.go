package partyhub

import _ "embed"

// Embed the built-in prompt decks
//
//go:embed static/prompt-decks.yaml
var PromptDecksYAML []byte
