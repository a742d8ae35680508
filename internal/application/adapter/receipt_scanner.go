// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// ScannedItem is one candidate item produced by the receipt scanner. Every
// candidate still goes through the regular item validator before it reaches
// the draft; the scanner makes no validity guarantees.
type ScannedItem struct {
	Name     string
	Price    float64
	Quantity int // 0 means the scanner saw no quantity; caller defaults to 1
}

// ReceiptScanner extracts candidate items from a receipt image.
type ReceiptScanner interface {
	// IsAvailable checks if the scanner is configured and ready to use.
	IsAvailable() bool

	// Scan analyzes a receipt image and returns the candidate items it found.
	Scan(ctx context.Context, image []byte, mimeType string) ([]ScannedItem, error)
}
