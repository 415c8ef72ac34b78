package manifest

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// buildResultSchema constrains the manifest shape: service names are
// lowercase DNS-style identifiers, values are an image reference string or
// one of the legacy not-built sentinels.
const buildResultSchema = `
#BuildResult: {
	[=~"^[a-z0-9]([a-z0-9-]*[a-z0-9])?$"]: string | bool | null
}
`

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

func compiledSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaValue = ctx.CompileString(buildResultSchema).LookupPath(
			cue.ParsePath("#BuildResult"))
	})
	return schemaValue
}

// validateSchema vets the manifest JSON against the #BuildResult schema.
func validateSchema(filename string, jsonData []byte) error {
	schema := compiledSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	expr, err := cuejson.Extract(filename, jsonData)
	if err != nil {
		return fmt.Errorf("manifest %s is not a JSON object: %w", filename, err)
	}

	value := schema.Context().BuildExpr(expr)
	if err := value.Err(); err != nil {
		return fmt.Errorf("manifest %s: %w", filename, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("manifest %s failed schema validation: %w", filename, err)
	}

	return nil
}
