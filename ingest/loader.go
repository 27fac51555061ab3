package ingest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is one loaded source file before chunking
type Document struct {
	Source  string
	Content string
}

// sampleGuide is written into an empty data directory so a fresh
// checkout produces a working index
const sampleGuide = `# Pet Care Guide for MPS PetCare

## Dog Care Basics
- Feed adult dogs twice daily with high-quality dog food
- Ensure fresh water is always available
- Regular exercise is essential - at least 30 minutes daily
- Vaccinations: Rabies, Distemper, Parvovirus are essential
- Regular grooming based on breed requirements

## Cat Care Basics
- Feed cats 2-3 small meals daily
- Keep litter box clean - scoop daily
- Provide scratching posts to protect furniture
- Vaccinations: Rabies, FVRCP are essential
- Regular brushing helps reduce hairballs

## Pet Health Signs to Watch
- Loss of appetite for more than 24 hours
- Excessive thirst or urination
- Lethargy or unusual behavior
- Vomiting or diarrhea
- Difficulty breathing

If you notice these signs, consult a veterinarian immediately.

## Nutrition Tips
- Avoid feeding pets chocolate, grapes, onions, and garlic
- Human food should be limited
- Age-appropriate food is important (puppy, adult, senior)
- Treats should be less than 10% of daily calories

MPS PetCare offers a wide range of pet products, adoption services,
and can help you find veterinary services near you in Sri Lanka.
`

// LoadDocuments walks the data directory and loads every supported
// file. A missing or empty directory is seeded with a sample guide so
// the first run still indexes something.
func LoadDocuments(dataPath string) ([]Document, error) {
	if _, err := os.Stat(dataPath); os.IsNotExist(err) {
		if err := seedSampleData(dataPath); err != nil {
			return nil, err
		}
	}

	var documents []Document

	err := filepath.WalkDir(dataPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		content, err := extractText(path)
		if err != nil {
			// Skip unreadable files instead of aborting the whole run
			return nil
		}
		if strings.TrimSpace(content) == "" {
			return nil
		}

		documents = append(documents, Document{Source: path, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk data directory: %w", err)
	}

	return documents, nil
}

// extractText reads a file's textual content based on its extension
func extractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(content), nil
	case ".pdf":
		return extractPDFText(path)
	default:
		return "", fmt.Errorf("unsupported file type: %s", path)
	}
}

// extractPDFText pulls the plain text out of a PDF file
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("failed to read pdf text from %s: %w", path, err)
	}

	return buf.String(), nil
}

func seedSampleData(dataPath string) error {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return fmt.Errorf("failed to create data path: %w", err)
	}
	samplePath := filepath.Join(dataPath, "pet_care_guide.txt")
	if err := os.WriteFile(samplePath, []byte(sampleGuide), 0o644); err != nil {
		return fmt.Errorf("failed to write sample guide: %w", err)
	}
	return nil
}
