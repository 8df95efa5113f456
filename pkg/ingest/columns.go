// Package ingest maps spreadsheet tables onto the scoring model.
package ingest

// Column aliases, compared in table.Key form, so case and accents do not matter.
var (
	dateColumns      = []string{"Date", "Fecha"}
	titleColumns     = []string{"Title", "Título", "Titulo"}
	snippetColumns   = []string{"Snippet", "Extracto"}
	dimensionColumns = []string{"Dimensión", "Dimension"}
	sentimentColumns = []string{"Sentiment", "Sentimiento"}
	pageTypeColumns  = []string{"Page Type", "PageType", "Source", "Fuente"}
	impactColumns    = []string{"Impact", "Impacto"}

	openColumns  = []string{"Open", "Apertura"}
	highColumns  = []string{"High", "Máximo"}
	lowColumns   = []string{"Low", "Mínimo"}
	closeColumns = []string{"Close", "Cierre", "GlobalScore"}
)

const scoreColumnPrefix = "Score_"

// DefaultEngagementColumns are the per-platform engagement counts summed into
// the engagement of a mention.
var DefaultEngagementColumns = []string{
	"Instagram Likes",
	"Instagram Comments",
	"Instagram Shares",
	"Tiktok Likes",
	"Tiktok Comments",
	"Tiktok Shares",
}
