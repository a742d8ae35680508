// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/patungan/backend/internal/application/adapter"
)

// GeminiScanner implements the ReceiptScanner using Google Gemini vision.
type GeminiScanner struct {
	apiKey    string
	modelName string
}

// NewGeminiScanner creates a new Gemini scanner instance.
func NewGeminiScanner(apiKey string) *GeminiScanner {
	return &GeminiScanner{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini scanner is available and properly configured.
func (s *GeminiScanner) IsAvailable() bool {
	return s.apiKey != ""
}

// Scan sends the receipt image to Gemini and parses the items it finds.
func (s *GeminiScanner) Scan(ctx context.Context, image []byte, mimeType string) ([]adapter.ScannedItem, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini scanner is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	format := imageFormat(mimeType)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(scanPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	items, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return items, nil
}

const scanPrompt = `Anda adalah asisten pembaca struk belanja. Analisis gambar struk ini dan ekstrak setiap item pembelian.

Untuk setiap item, tentukan:
1. "name": nama item seperti tertulis di struk
2. "price": harga satuan dalam Rupiah sebagai angka, tanpa pemisah ribuan
3. "quantity": jumlah item sebagai bilangan bulat; gunakan 1 jika tidak tercantum

ATURAN:
- Abaikan baris subtotal, pajak, servis, diskon, dan total
- Jika harga yang tertera adalah harga total baris, bagi dengan jumlah untuk mendapat harga satuan
- Jangan mengarang item yang tidak ada di struk

FORMAT RESPONS: Kembalikan hanya array JSON, tanpa teks tambahan:
[{"name": "string", "price": 12500, "quantity": 1}]
`

// geminiItem represents one raw item from the Gemini response.
type geminiItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// parseResponse extracts the item array from the Gemini response.
func (s *GeminiScanner) parseResponse(resp *genai.GenerateContentResponse) ([]adapter.ScannedItem, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw []geminiItem
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	items := make([]adapter.ScannedItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, adapter.ScannedItem{
			Name:     r.Name,
			Price:    r.Price,
			Quantity: r.Quantity,
		})
	}
	return items, nil
}

// imageFormat maps a MIME type to the format string genai expects.
func imageFormat(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}
