package sources

import (
	"testing"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleZod = `import { z } from "zod";

type EnvType = "build-time" | "runtime";

export const envRegistry = z.registry<{ envType: EnvType; group: string }>();

export const schema = z.object({
    mySecret: z.string()
        .default("defaultValue")
        .describe("This is a secret value")
        .register(envRegistry, { envType: "runtime", group: "Secrets" }),
    debug: z.boolean()
        .default(false)
        .describe("Enable debug mode")
        .register(envRegistry, { envType: "build-time", group: "Settings" }),
    apiUrl: z.string()
        .describe("API endpoint URL")
        .register(envRegistry, { envType: "runtime", group: "API" }),
});
`

func TestParseZod_Example(t *testing.T) {
	vars := ParseZod(exampleZod)
	require.Len(t, vars, 3)

	assert.Equal(t, domain.Variable{
		Name:        "mySecret",
		Type:        domain.TypeString,
		Description: "This is a secret value",
		Default:     "defaultValue",
		HasDefault:  true,
		Optional:    true,
		Group:       "Secrets",
		EnvType:     "runtime",
	}, vars[0])

	assert.Equal(t, "debug", vars[1].Name)
	assert.Equal(t, domain.TypeBoolean, vars[1].Type)
	assert.Equal(t, "false", vars[1].Default)
	assert.Equal(t, "build-time", vars[1].EnvType)
	assert.Equal(t, "Settings", vars[1].Group)

	assert.Equal(t, "apiUrl", vars[2].Name)
	assert.False(t, vars[2].Optional)
	assert.False(t, vars[2].HasDefault)
	assert.Equal(t, "API endpoint URL", vars[2].Description)
	assert.Equal(t, "API", vars[2].Group)
}

func TestParseZod_Types(t *testing.T) {
	src := `
const env = z.object({
  PORT: z.coerce.number().int().default(3000), // http port
  RATIO: z.number(),
  COUNT: z.number().int(),
  FLAG: z.coerce.boolean(),
  "QUOTED_KEY": z.string().optional(),
  NULLABLE: z.string().nullable(),
  /* URL: z.boolean(), */
  URL: z.string().url().describe('Public, base URL'),
  ...base.shape,
});
`
	vars := ParseZod(src)
	byName := map[string]domain.Variable{}
	for _, v := range vars {
		byName[v.Name] = v
	}
	require.Len(t, byName, 7)

	assert.Equal(t, domain.TypeInteger, byName["PORT"].Type)
	assert.Equal(t, "3000", byName["PORT"].Default)
	assert.Equal(t, domain.TypeNumber, byName["RATIO"].Type)
	assert.Equal(t, domain.TypeInteger, byName["COUNT"].Type)
	assert.Equal(t, domain.TypeBoolean, byName["FLAG"].Type)
	assert.True(t, byName["QUOTED_KEY"].Optional)
	assert.True(t, byName["NULLABLE"].Optional)
	assert.Equal(t, domain.TypeString, byName["URL"].Type)
	assert.Equal(t, "Public, base URL", byName["URL"].Description)
}

func TestParseZod_TypeIgnoresLiterals(t *testing.T) {
	src := `
export const schema = z.object({
  port: z.string().describe("uses z.number later, never .optional()"),
  ratio: z.number().describe('not z.boolean, nor .int( either'),
  flag: z.boolean().default(false).describe(` + "`z.string() \\` escaped`" + `),
});
`
	vars := ParseZod(src)
	require.Len(t, vars, 3)

	byName := map[string]domain.Variable{}
	for _, v := range vars {
		byName[v.Name] = v
	}
	assert.Equal(t, domain.TypeString, byName["port"].Type)
	assert.Equal(t, "uses z.number later, never .optional()", byName["port"].Description)
	assert.False(t, byName["port"].Optional)
	assert.Equal(t, domain.TypeNumber, byName["ratio"].Type)
	assert.Equal(t, domain.TypeBoolean, byName["flag"].Type)
}

func TestParseZod_NestedObject(t *testing.T) {
	src := `export const s = z.object({
  db: z.object({ DB_HOST: z.string(), DB_PORT: z.number() }),
  NAME: z.string().meta({ group: "Core" }),
})`
	vars := ParseZod(src)

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	assert.ElementsMatch(t, []string{"NAME", "DB_HOST", "DB_PORT"}, names)

	for _, v := range vars {
		if v.Name == "NAME" {
			assert.Equal(t, "Core", v.Group)
		}
	}
}

func TestParseZod_NoObject(t *testing.T) {
	assert.Empty(t, ParseZod(`export const x = 1;`))
}
