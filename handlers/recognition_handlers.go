package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"app/forecast"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleAnalyzeSnapshot turns a shelf photo into per-product counts via
// Gemini and records them as a snapshot.
// POST /api/v1/snapshots/analyze
func HandleAnalyzeSnapshot(c *fiber.Ctx) error {
	var req models.AnalyzeSnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if req.TimeOfDay != forecast.TimeOfDayAM && req.TimeOfDay != forecast.TimeOfDayEOD {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "time_of_day must be 'AM' or 'EOD'"})
	}

	// Extract image format and data from the base64 data URL.
	parts := strings.Split(req.ImageData, ";base64,")
	if len(parts) != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid image data format"})
	}
	mimeTypeParts := strings.Split(strings.TrimPrefix(parts[0], "data:"), "/")
	if len(mimeTypeParts) != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid image mime type"})
	}
	imageFormat := mimeTypeParts[1]

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Failed to decode image data"})
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize recognition client"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	prompt := []genai.Part{
		genai.Text(recognitionPrompt),
		genai.ImageData(imageFormat, imageData),
	}

	resp, err := model.GenerateContent(ctx, prompt...)
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to analyze image"})
	}

	var recognizedText string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				recognizedText += string(txt)
			}
		}
	}
	jsonStr := extractJSON(recognizedText)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from recognition response: %s", recognizedText)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to parse recognition response"})
	}

	counts, err := parseRecognizedCounts([]byte(jsonStr))
	if err != nil {
		log.Printf("Error parsing recognized counts: %v\nRaw JSON: %s", err, jsonStr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Recognition output did not contain usable counts"})
	}

	storeName := req.StoreName
	if storeName == "" {
		storeName = "default"
	}

	snapshot, err := insertSnapshot(ctx, time.Now().UTC(), req.TimeOfDay, storeName, counts)
	if err != nil {
		log.Printf("❌ [RECOGNIZE] Failed to store recognized snapshot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store recognized counts"})
	}

	log.Printf("✅ [RECOGNIZE] Stored %s snapshot %d with %d recognized products", snapshot.TimeOfDay, snapshot.ID, len(counts))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": snapshot})
}

const recognitionPrompt = `
You are a shelf-count assistant. Count the retail products visible in the photo.

Respond with a single minified JSON object of this exact structure, with no
markdown formatting, backticks, or explanatory text:

{"counts":[{"product_type":"string","count":integer},...]}
`

// extractJSON pulls the outermost JSON object out of a model response that
// may be wrapped in prose or markdown fences.
func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// Field aliases accepted when normalizing recognition output, tried in
// this order. Models drift in their key naming; the order is fixed so the
// same payload always parses the same way.
var (
	productKeyAliases = []string{"product_type", "product", "name", "item", "label"}
	countKeyAliases   = []string{"count", "quantity", "qty", "units"}
)

// parseRecognizedCounts normalizes loosely structured recognition output
// into counts. Accepted shapes, in order:
//
//  1. {"counts": [...]} wrapping an array of count objects
//  2. a bare array of count objects
//  3. a single count object
//
// Each count object must carry a product field and a count field matching
// one of the fixed alias lists above. As an explicit fallback, an object
// with exactly one unrecognized key whose value is a number is read as
// {product_type: key, count: value} — e.g. {"canned_beans": 12}.
func parseRecognizedCounts(data []byte) ([]models.RecognizedCount, error) {
	var wrapper struct {
		Counts []json.RawMessage `json:"counts"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Counts) > 0 {
		return parseCountObjects(wrapper.Counts)
	}

	var array []json.RawMessage
	if err := json.Unmarshal(data, &array); err == nil && len(array) > 0 {
		return parseCountObjects(array)
	}

	counts, err := parseCountObjects([]json.RawMessage{data})
	if err != nil {
		return nil, fmt.Errorf("unrecognized counts payload")
	}
	return counts, nil
}

func parseCountObjects(objects []json.RawMessage) ([]models.RecognizedCount, error) {
	counts := make([]models.RecognizedCount, 0, len(objects))
	for _, raw := range objects {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("count entry is not an object: %w", err)
		}

		count, err := parseCountObject(fields)
		if err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no count entries found")
	}
	return counts, nil
}

func parseCountObject(fields map[string]json.RawMessage) (models.RecognizedCount, error) {
	var result models.RecognizedCount

	for _, key := range productKeyAliases {
		if raw, ok := fields[key]; ok {
			if err := json.Unmarshal(raw, &result.ProductType); err != nil {
				return result, fmt.Errorf("field %q is not a string", key)
			}
			break
		}
	}
	for _, key := range countKeyAliases {
		if raw, ok := fields[key]; ok {
			if err := json.Unmarshal(raw, &result.Count); err != nil {
				return result, fmt.Errorf("field %q is not an integer", key)
			}
			if result.ProductType != "" {
				return result, nil
			}
			break
		}
	}

	// Fallback: exactly one unknown key with a numeric value is read as
	// the product name mapping to its count.
	if len(fields) == 1 {
		for key, raw := range fields {
			if isAliasKey(key) {
				break
			}
			var n int
			if err := json.Unmarshal(raw, &n); err == nil {
				return models.RecognizedCount{ProductType: key, Count: n}, nil
			}
		}
	}

	return result, fmt.Errorf("count entry missing product or count field")
}

func isAliasKey(key string) bool {
	for _, k := range productKeyAliases {
		if key == k {
			return true
		}
	}
	for _, k := range countKeyAliases {
		if key == k {
			return true
		}
	}
	return false
}
