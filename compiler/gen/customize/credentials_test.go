package customize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shapegen/compiler/gen"
)

func TestCredentialsCacheDecorator(t *testing.T) {
	d := NewCredentialsCacheDecorator()
	assert.Equal(t, "CredentialsCache", d.Name())
	assert.Equal(t, int8(0), d.Order())
}

func TestCredentialsCacheComposition(t *testing.T) {
	ctx := testContext(t)
	op, ok := ctx.Model.Shape("com.example#PutTags")
	require.True(t, ok)

	r := gen.NewRegistry(NewCredentialsCacheDecorator())
	c := r.Compose(ctx, op,
		[]gen.ConfigCustomization{marker("a"), marker("b")},
		[]gen.OperationCustomization{opMarker("x")},
	)

	require.Len(t, c.Config, 3)
	assert.Equal(t, marker("a"), c.Config[0])
	assert.Equal(t, marker("b"), c.Config[1])
	assert.IsType(t, &CredentialsCacheConfig{}, c.Config[2])

	require.Len(t, c.Operation, 2)
	assert.Equal(t, opMarker("x"), c.Operation[0])
	assert.IsType(t, &CredentialsCacheFeature{}, c.Operation[1])

	require.Len(t, c.AdHoc, 1)
	assert.Equal(t, "CopySdkConfigToClientConfig", c.AdHoc[0].Event())
}

func TestCredentialsCacheSections(t *testing.T) {
	cfg := &CredentialsCacheConfig{cachePkg: "rt/auth/cache"}
	assert.Nil(t, cfg.Section(gen.ServiceConfigSection(nil)))
	for _, s := range []gen.ServiceConfigSection{
		gen.ConfigStruct{},
		gen.ConfigImpl{Receiver: "c"},
		gen.BuilderStruct{},
		gen.BuilderImpl{Receiver: "b"},
		gen.BuilderBuild{Builder: "b", Config: "config"},
	} {
		assert.False(t, cfg.Section(s).IsEmpty(), s.SectionName())
	}

	f := &CredentialsCacheFeature{authPkg: "rt/auth"}
	assert.True(t, f.Section(gen.MutateInput{Input: "input", Config: "config"}).IsEmpty())
	assert.False(t, f.Section(gen.MutateRequest{Request: "request", Config: "config"}).IsEmpty())
}

func TestCredentialsCacheGenerated(t *testing.T) {
	files := generate(t, gen.WithDecorators(NewCredentialsCacheDecorator()))

	config := files["config.go"]
	assert.Contains(t, config, "credentialsCache cache.SharedCredentialsCache")
	assert.Contains(t, config, "func (c *Config) CredentialsCache() cache.SharedCredentialsCache")
	assert.Contains(t, config, "func (b *Builder) WithCredentialsCache(credentialsCache cache.CredentialsCache) *Builder")
	assert.Contains(t, config, "func (b *Builder) SetCredentialsCache(credentialsCache *cache.CredentialsCache) *Builder")
	assert.Contains(t, config, "config.credentialsCache = cache.NewShared(b.credentialsCache)")
	assert.Contains(t, config, `"github.com/syssam/shapegen-runtime/auth/cache"`)

	assert.Contains(t, files["put_tags_request.go"], "auth.SetCredentialsCache(request.Properties(), config.credentialsCache)")
	assert.Contains(t, files["sdk_config.go"], "builder.SetCredentialsCache(sdkConfig.CredentialsCache())")
}
