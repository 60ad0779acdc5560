package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

const invoicePrompt = `Please analyze this invoice image and extract all visible information into JSON.

Extract the following information:
- Company name and details
- Customer information (name, addresses, contact info)
- Invoice details (number, dates, PO number)
- All line items with descriptions, quantities, prices
- Tax information and calculations
- Total amounts
- Payment terms and conditions
- Any notes or signatures
- Currency as ISO 4217 code (e.g. 'USD', 'EUR') - convert symbols like '$' to proper codes

Format your response as a valid JSON object with the following structure:
{
  "invoice": {
    "company": "...",
    "customer": {"name": "...", "billing_address": "...", "shipping_address": "...", "email": "...", "phone": "..."},
    "details": {"issue_date": "YYYY-MM-DD", "invoice_number": "...", "due_date": "YYYY-MM-DD", "po_number": "..."},
    "items": [{"description": "...", "quantity": 0.0, "unit_price": 0.0, "total_price": 0.0, "tax_rate": 0.0}],
    "subtotal": 0.0,
    "sales_tax": {"rate": 0.0, "amount": 0.0},
    "discount": {"rate": 0.0, "amount": 0.0, "description": "..."},
    "total_due": 0.0,
    "terms": {"payment_due": "...", "payable_to": "...", "late_fee": "..."},
    "signature": "...",
    "purpose": "...",
    "notes": "...",
    "currency": "USD",
    "status": "draft"
  }
}

If any field is not visible or clear, omit it from the JSON.
Do not include any other text in your response, only provide the JSON.`

// GeminiExtractor implements the Extractor interface using Google Gemini
type GeminiExtractor struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiExtractor creates a new Gemini-backed extractor
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &GeminiExtractor{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// ExtractInvoice analyzes an invoice image and extracts structured data
func (g *GeminiExtractor) ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// genai.ImageData expects just the format suffix (e.g. "png"),
	// not the full MIME type (e.g. "image/png")
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || format == mimeType {
		format = "jpeg"
	}

	parts := []genai.Part{
		genai.ImageData(format, imageData),
		genai.Text(invoicePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, &ExtractionError{Op: "generate_content", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &ExtractionError{Op: "read_response", Err: fmt.Errorf("no response from gemini")}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	result, err := parseExtractionJSON(responseText.String())
	if err != nil {
		return nil, &ExtractionError{Op: "parse_response", Err: err}
	}

	return result, nil
}

// Close closes the Gemini client
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}
