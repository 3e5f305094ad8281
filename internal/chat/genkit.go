package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// GenkitGenerator runs model calls through a Genkit instance.
type GenkitGenerator struct {
	g           *genkit.Genkit
	modelName   string
	temperature float64
}

// NewGenkitGenerator wraps g for the named model. Bare model names get the
// googleai/ provider prefix.
func NewGenkitGenerator(g *genkit.Genkit, modelName string, temperature float64) *GenkitGenerator {
	if !strings.Contains(modelName, "/") {
		modelName = "googleai/" + modelName
	}
	return &GenkitGenerator{g: g, modelName: modelName, temperature: temperature}
}

// Generate implements Generator.
func (gg *GenkitGenerator) Generate(ctx context.Context, system string, messages []*ai.Message) (string, error) {
	resp, err := genkit.Generate(ctx, gg.g,
		ai.WithModelName(gg.modelName),
		ai.WithSystem(system),
		ai.WithMessages(messages...),
		ai.WithConfig(map[string]any{"temperature": gg.temperature}),
	)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", gg.modelName, err)
	}
	return resp.Text(), nil
}
