package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

// Category describes a board. The set of codes is open: any non-empty code
// names a board, known codes just carry a curated name.
type Category struct {
	Code        string `yaml:"code"        json:"brCd"`
	Name        string `yaml:"name"        json:"brNm"`
	Description string `yaml:"description" json:"description"`
}

// CategoryCatalog resolves category codes to display metadata.
type CategoryCatalog struct {
	byCode map[string]Category
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// ParseCategoryCatalog reads a catalog from YAML.
func ParseCategoryCatalog(data []byte) (*CategoryCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse category catalog: %w", err)
	}

	c := &CategoryCatalog{byCode: make(map[string]Category, len(f.Categories))}
	for _, cat := range f.Categories {
		if cat.Code == "" {
			return nil, NewValidationError("code", "is required in category catalog", ErrValidation)
		}
		if _, dup := c.byCode[cat.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate category code %q", ErrValidation, cat.Code)
		}
		c.byCode[cat.Code] = cat
	}
	return c, nil
}

// DefaultCategoryCatalog returns the catalog embedded in the binary.
func DefaultCategoryCatalog() (*CategoryCatalog, error) {
	return ParseCategoryCatalog(defaultCategoriesYAML)
}

// Lookup returns the category for code. Unknown codes get a generated
// name and description rather than an error.
func (c *CategoryCatalog) Lookup(code string) Category {
	if cat, ok := c.byCode[code]; ok {
		return cat
	}
	return Category{
		Code:        code,
		Name:        "게시판 " + code,
		Description: code + " 게시판입니다.",
	}
}
