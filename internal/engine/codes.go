package engine

import "streacs/internal/models"

// Presentation constants for anything without a classification.
const (
	NoDataColor = "#cccccc"
	NoDataLabel = "No data"
)

// LiberalizationScore orders codes from 1 (state VIU) to 9 (full retail).
// 3b and 3c share a score. Unknown codes score 0.
func LiberalizationScore(c models.MarketCode) int {
	switch c {
	case models.Code1a:
		return 1
	case models.Code1b:
		return 2
	case models.Code2a:
		return 3
	case models.Code2b:
		return 4
	case models.Code3a:
		return 5
	case models.Code3b, models.Code3c:
		return 6
	case models.Code3d:
		return 7
	case models.Code4a:
		return 8
	case models.Code4b:
		return 9
	default:
		return 0
	}
}

func MarketColor(c models.MarketCode) string {
	switch c {
	case models.Code1a:
		return "#d73027"
	case models.Code1b:
		return "#fc8d59"
	case models.Code2a:
		return "#fee090"
	case models.Code2b:
		return "#e0f3f8"
	case models.Code3a:
		return "#91bfdb"
	case models.Code3b:
		return "#4575b4"
	case models.Code3c:
		return "#74add1"
	case models.Code3d:
		return "#313695"
	case models.Code4a:
		return "#abd9e9"
	case models.Code4b:
		return "#2c7bb6"
	default:
		return NoDataColor
	}
}

func MarketLabel(c models.MarketCode) string {
	switch c {
	case models.Code1a:
		return "VIU State-owned"
	case models.Code1b:
		return "VIU Private"
	case models.Code2a:
		return "SBM with Generation"
	case models.Code2b:
		return "SBM without Generation"
	case models.Code3a:
		return "Wholesale - Bilateral"
	case models.Code3b:
		return "Wholesale - Pool"
	case models.Code3c:
		return "Wholesale - Cost-based"
	case models.Code3d:
		return "Wholesale - Bid-based"
	case models.Code4a:
		return "Retail - Partial"
	case models.Code4b:
		return "Retail - Full"
	default:
		return NoDataLabel
	}
}

func TierOf(c models.MarketCode) models.Tier {
	switch c {
	case models.Code1a, models.Code1b:
		return models.TierVerticallyIntegrated
	case models.Code2a, models.Code2b:
		return models.TierSingleBuyer
	case models.Code3a, models.Code3b, models.Code3c, models.Code3d:
		return models.TierWholesale
	case models.Code4a, models.Code4b:
		return models.TierRetail
	default:
		return models.TierNone
	}
}

var codeCatalog = []struct {
	label, description string
}{
	models.Code1a: {"VIU State-owned", "One state-owned company controls generation, transmission, and distribution"},
	models.Code1b: {"VIU Private", "One privately-owned company controls generation, transmission, and distribution"},
	models.Code2a: {"SBM with Generation", "Single buyer owns generation assets and purchases from IPPs"},
	models.Code2b: {"SBM without Generation", "Single buyer does not own generation, purchases from multiple generators"},
	models.Code3a: {"Bilateral Trading", "Bilateral contracting between generators and distributors"},
	models.Code3b: {"Bid-based Power Exchange", "Trading through power exchange with bid-based pricing"},
	models.Code3c: {"Cost-based Pool", "Trading through cost-based power pool"},
	models.Code3d: {"Bid-based Pool", "Mandatory pool with bid-based pricing"},
	models.Code4a: {"Partial Retail", "Some customer classes can choose suppliers"},
	models.Code4b: {"Full Retail", "All customers can choose their electricity supplier"},
}

// CodeDefinitions returns the catalog of the ten codes, in code order.
// Each call returns a fresh slice.
func CodeDefinitions() []models.CodeDefinition {
	codes := models.AllMarketCodes()
	defs := make([]models.CodeDefinition, 0, len(codes))
	for _, c := range codes {
		defs = append(defs, models.CodeDefinition{
			Code:        c,
			Type:        TierOf(c),
			Label:       codeCatalog[c].label,
			Description: codeCatalog[c].description,
		})
	}
	return defs
}
