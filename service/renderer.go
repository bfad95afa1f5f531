package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"pos-storefront/models"
	"pos-storefront/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"price": utils.FormatAmount,
	"money": utils.FormatMoney,
}

var templates = template.Must(template.New("pos").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))

func execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderCatalog renders one card per product, in order
func RenderCatalog(products []models.Product) (template.HTML, error) {
	return execute("catalog", products)
}

// RenderCart renders one row per cart line with its index-bound +/- controls
func RenderCart(lines []models.CartLine) (template.HTML, error) {
	return execute("cart", lines)
}

// PageData is the input of the full storefront page
type PageData struct {
	Notices []models.Notice
	Catalog template.HTML
	Cart    template.HTML
}

// RenderPage renders the full storefront page around already rendered elements
func RenderPage(data PageData) (template.HTML, error) {
	return execute("page", data)
}

// RenderPriceList renders the printable price list
func RenderPriceList(products []models.Product, generatedAt time.Time) (template.HTML, error) {
	return execute("print", struct {
		Products    []models.Product
		GeneratedAt string
	}{
		Products:    products,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
	})
}
