package slugify

// Option configures slug generation.
type Option func(*options)

type options struct {
	replacements map[string]string
	separator    string
	stripChars   string
	maxLength    int
	lowercase    bool
}

func defaultOptions() *options {
	return &options{
		separator: "-",
		lowercase: true,
	}
}

// Separator sets the string placed between words.
// Default: "-"
func Separator(s string) Option {
	return func(o *options) {
		o.separator = s
	}
}

// Lowercase controls whether the result is folded to lower case.
// Default: true
func Lowercase(enabled bool) Option {
	return func(o *options) {
		o.lowercase = enabled
	}
}

// MaxLength limits the result to n runes. Zero means unlimited.
// Default: 0
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// StripChars removes the given characters from the input before any other
// processing.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars = chars
	}
}

// CustomReplace applies the given string replacements before
// slugification, e.g. {"&": "and"}.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		o.replacements = replacements
	}
}
