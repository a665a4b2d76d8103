package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxjoin/compiler/gen"
	"github.com/syssam/veloxjoin/schema"
)

func blogRegistry() *schema.Registry {
	user := schema.NewEntity("user")
	blog := schema.NewEntity("blog")
	comment := schema.NewEntity("comment")
	user.HasMany("blogs", blog).HasManyThrough("commentsOnBlogs", comment, blog)
	blog.HasMany("comments", comment).BelongsTo("author", user)
	return schema.NewRegistry(user, blog, comment)
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerate(t *testing.T) {
	buf, err := gen.Generate(blogRegistry(), "blogschema")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "generate", buf)
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blogschema")
	require.NoError(t, gen.WriteDir(context.Background(), blogRegistry(), "blogschema", dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"blog.go", "comment.go", gen.EntitiesFile, "user.go"}, names)

	g := newGoldie(t)
	for _, name := range names {
		buf, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		g.Assert(t, name, buf)
	}
}

func TestWriteDirCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := gen.WriteDir(ctx, blogRegistry(), "blogschema", t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateCollision(t *testing.T) {
	tests := []struct {
		name    string
		reg     func() *schema.Registry
		wantErr string
	}{
		{
			name: "entities",
			reg: func() *schema.Registry {
				return schema.NewRegistry(schema.NewEntity("blog_post"), schema.NewEntity("BlogPost"))
			},
			wantErr: "veloxjoin: generation error on entity BlogPost: identifier EntityBlogPost of entity BlogPost collides with entity blog_post",
		},
		{
			name: "relations",
			reg: func() *schema.Registry {
				blog := schema.NewEntity("blog")
				comment := schema.NewEntity("comment")
				blog.HasMany("comments", comment).HasMany("Comments", comment)
				return schema.NewRegistry(blog, comment)
			},
			wantErr: "veloxjoin: generation error on entity blog: identifier BlogComments of relation blog.Comments collides with relation blog.comments",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.reg(), "x")
			require.Error(t, err)
			assert.True(t, gen.IsGenerationError(err))
			assert.ErrorIs(t, err, gen.ErrGenerationFailed)
			assert.EqualError(t, err, tt.wantErr)

			err = gen.WriteDir(context.Background(), tt.reg(), "x", t.TempDir())
			assert.True(t, gen.IsGenerationError(err))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := map[string]string{
		"blog":             "Blog",
		"blog_post":        "BlogPost",
		"commentsOnBlogs":  "CommentsOnBlogs",
		"DeletableComment": "DeletableComment",
	}
	for in, want := range tests {
		assert.Equal(t, want, gen.Pascal(in), in)
	}
}

func TestGenerationError(t *testing.T) {
	err := gen.NewGenerationError("blog", "blog.go", "write", os.ErrPermission)
	assert.EqualError(t, err, "veloxjoin: generation error on entity blog (file: blog.go): write: permission denied")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.ErrorIs(t, err, gen.ErrGenerationFailed)
}
