package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("schema: schema.yaml"), 0o644))

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	configPath := filepath.Join(root, "veloxjoin.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("schema: schema.yaml"), 0o644))
	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := findConfigFile("")
	require.NoError(t, err)
	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtRepoRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "veloxjoin.yaml"), []byte("schema: x"), 0o644))
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	chdir(t, repo)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	chdir(t, dir)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "veloxjoin.schema.yaml", cfg.Schema)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.False(t, cfg.Verbose)

	file := filepath.Join(dir, "veloxjoin.yaml")
	require.NoError(t, os.WriteFile(file, []byte("schema: blog.yaml\ndialect: mysql\ndatabase:\n  name: app\n  user: root\n"), 0o644))
	t.Setenv("VELOXJOIN_DIALECT", "postgres")
	t.Setenv("VELOXJOIN_DATABASE_HOST", "db")

	cfg, path, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, file, path)
	assert.Equal(t, "blog.yaml", cfg.Schema)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "app", cfg.Database.Name)
	assert.Equal(t, "root", cfg.Database.User)

	t.Setenv("VELOXJOIN_DIALECT", "oracle")
	_, _, err = LoadConfig("")
	assert.EqualError(t, err, `unknown dialect "oracle"`)
}

func TestResolvedDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr string
	}{
		{
			name: "explicit",
			cfg:  Config{Dialect: "mysql", DSN: "root@/app", Database: DatabaseConfig{Name: "other"}},
			want: "root@/app",
		},
		{
			name: "mysql tcp",
			cfg:  Config{Dialect: "mysql", Database: DatabaseConfig{Host: "localhost", Port: 3306, Name: "app", User: "root", Password: "secret"}},
			want: "root:secret@tcp(localhost:3306)/app",
		},
		{
			name: "mysql default address",
			cfg:  Config{Dialect: "mysql", Database: DatabaseConfig{Name: "app", User: "root"}},
			want: "root@/app",
		},
		{
			name: "postgres",
			cfg:  Config{Dialect: "postgres", Database: DatabaseConfig{Host: "db", Port: 5432, Name: "app", User: "u", Password: "p", Params: map[string]string{"sslmode": "disable"}}},
			want: "postgres://u:p@db:5432/app?sslmode=disable",
		},
		{
			name:    "postgres without host",
			cfg:     Config{Dialect: "postgres", Database: DatabaseConfig{Name: "app"}},
			wantErr: "database.host is required when dsn is not set",
		},
		{
			name: "sqlite",
			cfg:  Config{Dialect: "sqlite", Database: DatabaseConfig{Name: "blog.db"}},
			want: "blog.db",
		},
		{
			name:    "missing name",
			cfg:     Config{Dialect: "sqlite"},
			wantErr: "database.name is required when dsn is not set",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ResolvedDSN()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ExitSuccess, Report(&buf, nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, ExitSchema, Report(&buf, SchemaError("loading schema", errors.New("boom"))))
	assert.Equal(t, "Error: loading schema: boom\n", buf.String())

	buf.Reset()
	assert.Equal(t, ExitGeneral, Report(&buf, errors.New("plain")))
	assert.Equal(t, "Error: plain\n", buf.String())
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
