package domain

import (
	"errors"
	"strings"
)

// FormatCategory is the kind of material a resource links to.
type FormatCategory string

const (
	FormatVideo         FormatCategory = "VIDEO"
	FormatArticle       FormatCategory = "ARTICLE"
	FormatBook          FormatCategory = "BOOK"
	FormatCourse        FormatCategory = "COURSE"
	FormatPodcast       FormatCategory = "PODCAST"
	FormatDocumentation FormatCategory = "DOCUMENTATION"
	FormatTutorial      FormatCategory = "TUTORIAL"
	FormatTool          FormatCategory = "TOOL"
	FormatOther         FormatCategory = "OTHER"
)

// SubCategory is the subject a resource teaches.
type SubCategory string

const (
	SubJava         SubCategory = "JAVA"
	SubPython       SubCategory = "PYTHON"
	SubGo           SubCategory = "GO"
	SubJavaScript   SubCategory = "JAVASCRIPT"
	SubTypeScript   SubCategory = "TYPESCRIPT"
	SubCSharp       SubCategory = "CSHARP"
	SubDatabases    SubCategory = "DATABASES"
	SubDevOps       SubCategory = "DEVOPS"
	SubCloud        SubCategory = "CLOUD"
	SubSecurity     SubCategory = "SECURITY"
	SubAlgorithms   SubCategory = "ALGORITHMS"
	SubWeb          SubCategory = "WEB"
	SubTesting      SubCategory = "TESTING"
	SubArchitecture SubCategory = "ARCHITECTURE"
	SubGeneral      SubCategory = "GENERAL"
)

var (
	ErrInvalidFormatCategory = errors.New("unknown format category")
	ErrInvalidSubCategory    = errors.New("unknown sub category")
)

var formatCategories = []FormatCategory{
	FormatVideo, FormatArticle, FormatBook, FormatCourse, FormatPodcast,
	FormatDocumentation, FormatTutorial, FormatTool, FormatOther,
}

var subCategories = []SubCategory{
	SubJava, SubPython, SubGo, SubJavaScript, SubTypeScript, SubCSharp,
	SubDatabases, SubDevOps, SubCloud, SubSecurity, SubAlgorithms, SubWeb,
	SubTesting, SubArchitecture, SubGeneral,
}

// IsValid checks if the format category is a known value
func (f FormatCategory) IsValid() bool {
	for _, known := range formatCategories {
		if f == known {
			return true
		}
	}
	return false
}

// IsValid checks if the sub category is a known value
func (s SubCategory) IsValid() bool {
	for _, known := range subCategories {
		if s == known {
			return true
		}
	}
	return false
}

// ParseFormatCategory accepts any casing and surrounding whitespace.
func ParseFormatCategory(s string) (FormatCategory, error) {
	f := FormatCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", ErrInvalidFormatCategory
	}
	return f, nil
}

// ParseSubCategory accepts any casing and surrounding whitespace.
func ParseSubCategory(s string) (SubCategory, error) {
	c := SubCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidSubCategory
	}
	return c, nil
}

// FormatCategories returns every format category in declaration order.
func FormatCategories() []FormatCategory {
	return append([]FormatCategory(nil), formatCategories...)
}

// SubCategories returns every sub category in declaration order.
func SubCategories() []SubCategory {
	return append([]SubCategory(nil), subCategories...)
}
