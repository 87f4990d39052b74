// Package providers registers every available model provider. Import it for
// its side effects before calling core.NewClient.
package providers

import (
	_ "github.com/alby-numerique/participation/src/ai/gemini"
	_ "github.com/alby-numerique/participation/src/ai/openai"
)
