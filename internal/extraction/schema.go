package extraction

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed portfolio.schema.json
var portfolioSchema string

// ValidateShape checks a normalized portfolio object against the embedded
// JSON Schema. Normalization guarantees the shape, so a failure here points
// at a bug in the field table rather than bad model output; the extractor
// treats it as a warning, tests treat it as a failure.
func ValidateShape(data map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(portfolioSchema),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("portfolio shape invalid:")
	for _, desc := range result.Errors() {
		sb.WriteString(fmt.Sprintf(" %s: %s;", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%s", sb.String())
}
