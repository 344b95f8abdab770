package model

// StyleType classifies a style sheet entry.
type StyleType int

const (
	StyleParagraph StyleType = 1
	StyleCharacter StyleType = 2
	StyleTable     StyleType = 3
	StyleList      StyleType = 4
)

// Style is one resolved style sheet entry. BasedOn and Next are style
// indices; the no-style sentinel from the source format is represented as
// -1.
type Style struct {
	Index   int
	Type    StyleType
	BasedOn int
	Next    int
	Name    string

	Paragraph ParagraphProperties
	Character CharacterProperties
}

// FontFamily classifies a font table entry.
type FontFamily int

const (
	FamilyUnknown FontFamily = iota
	FamilyRoman
	FamilySwiss
	FamilyModern
	FamilyScript
	FamilyDecorative
)

// Font is one font table entry.
type Font struct {
	Name    string
	AltName string
	Family  FontFamily
	Charset int
}

// ListLevel is one level of a list definition.
type ListLevel struct {
	StartAt      int
	NumberFormat int // numbering format code; 23 means bullet
}

// ListDefinition is one entry of the document list table.
type ListDefinition struct {
	ID     int32
	Simple bool
	Levels []ListLevel
}
