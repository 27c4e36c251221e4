// Package slugify turns arbitrary text into URL-safe tokens.
//
// The default pipeline lowercases the input, folds common Latin diacritics
// to ASCII, drops everything else that is not ASCII, collapses runs of
// non-alphanumeric characters into a single separator, and strips leading
// and trailing separators. Empty or symbol-only input yields an empty
// token, never an error.
//
// Basic usage:
//
//	import "github.com/jnylen/slugging/pkg/slugify"
//
//	s := slugify.Make("Tra la la!")
//	// Output: "tra-la-la"
//
//	s = slugify.Make("Café & Restaurant")
//	// Output: "cafe-restaurant"
//
// # Options
//
// Separator sets the token placed between words (default "-"):
//
//	slugify.Make("Product Name", slugify.Separator("_"))
//	// Output: "product_name"
//
// Lowercase controls case folding (default true):
//
//	slugify.Make("Product Name", slugify.Lowercase(false))
//	// Output: "Product-Name"
//
// MaxLength cuts the result to a rune count, trimming any separator left
// dangling at the cut point:
//
//	slugify.Make("This is a very long title", slugify.MaxLength(20))
//	// Output: "this-is-a-very-long"
//
// StripChars removes specific characters before processing:
//
//	slugify.Make("Price: $100", slugify.StripChars("$:"))
//	// Output: "price-100"
//
// CustomReplace applies string replacements before slugification:
//
//	slugify.Make("Fish & Chips", slugify.CustomReplace(map[string]string{"&": "and"}))
//	// Output: "fish-and-chips"
//
// # Unicode
//
// Combining marks are removed through NFD decomposition, and a small set
// of non-decomposable Latin letters (ß, æ, œ, ø, ł, đ, ð) is mapped to
// ASCII directly. Scripts without an ASCII mapping (Cyrillic, CJK, emoji)
// are treated as separators.
package slugify
