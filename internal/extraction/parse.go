package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// parseExtractionJSON parses the JSON response from the model, tolerating
// markdown fences and surrounding prose, and validates that the response
// carries the minimum structure the pipeline requires.
func parseExtractionJSON(text string) (*domain.ExtractionResult, error) {
	text = cleanJSONResponse(text)

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	// A response without a company name is unusable: the record insert
	// requires it and its absence means the model did not read an invoice.
	if result.Invoice.Company == "" {
		return nil, fmt.Errorf("invalid response structure: missing company name")
	}

	return &result, nil
}

// cleanJSONResponse strips markdown code blocks and extracts the JSON
// object between the first { and the last }
func cleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx != -1 && endIdx != -1 && endIdx > startIdx {
		text = text[startIdx : endIdx+1]
	}

	return strings.TrimSpace(text)
}
