package resume

import "fmt"

// UnsupportedFormatError indicates an upload in a file format the extractor
// cannot parse.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: please upload a TXT or MD file", e.Filename)
}
