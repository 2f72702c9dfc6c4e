// Package domain defines the core types for test inventories and their comparison.
package domain

import (
	"path/filepath"
	"strings"
)

// Language represents a source language handled by the syntax tree provider.
type Language string

// Supported languages for test file parsing.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"
)

// DetectLanguage determines the language based on file extension.
// Unknown extensions are parsed as TypeScript, which accepts plain JavaScript.
func DetectLanguage(filename string) Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageTypeScript
	}
}
