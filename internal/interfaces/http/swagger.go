package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// SwaggerUI devuelve el middleware de documentación si el swagger.json
// generado existe en filePath; nil si no, para que el binario arranque sin UI
// de docs (swagger.New entra en pánico con el archivo ausente).
func SwaggerUI(filePath, title string) fiber.Handler {
	if _, err := os.Stat(filePath); err != nil {
		return nil
	}
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	})
}
