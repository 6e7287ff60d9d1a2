package http_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/pcbstock-api/internal/interfaces/http"
)

// Sin el swagger.json generado no hay middleware: el binario arranca sin la
// UI de docs en vez de entrar en pánico.
func TestSwaggerUI_SinArchivoDevuelveNil(t *testing.T) {
	handler := apphttp.SwaggerUI(filepath.Join(t.TempDir(), "swagger.json"), "Test API")
	assert.Nil(t, handler)
}

func TestSwaggerUI_ConArchivoDevuelveMiddleware(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"Test API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o644))

	handler := apphttp.SwaggerUI(path, "Test API")
	assert.NotNil(t, handler)
}
