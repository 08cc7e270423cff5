// core/barcode/table.go
package barcode

import (
	"fmt"
	"strings"
)

// NoMatch is the reserved label for read pairs matching no barcode.
const NoMatch = "NO_MATCH"

// Table maps barcodes to output filename prefixes. Barcodes preserves
// first-seen order; several barcodes may share a prefix (their reads land in
// the same output pair) and an empty prefix means the reads are discarded.
type Table struct {
	Barcodes []string
	Prefix   map[string]string
}

// ParseAssignments parses CLI barcode specs of the form "BARCODE=PREFIX" or
// "BC1 BC2=PREFIX" (several barcodes sharing one prefix). A spec without '='
// assigns an empty prefix.
func ParseAssignments(specs []string) (Table, error) {
	t := Table{Prefix: make(map[string]string)}
	for _, spec := range specs {
		head, prefix, _ := strings.Cut(spec, "=")
		bcs := strings.Fields(head)
		if len(bcs) == 0 {
			return Table{}, fmt.Errorf("barcode: empty spec %q", spec)
		}
		for _, bc := range bcs {
			bc = strings.ToUpper(bc)
			if err := validate(bc); err != nil {
				return Table{}, err
			}
			if _, dup := t.Prefix[bc]; dup {
				return Table{}, fmt.Errorf("barcode: duplicate barcode %q", bc)
			}
			t.Barcodes = append(t.Barcodes, bc)
			t.Prefix[bc] = prefix
		}
	}
	if len(t.Barcodes) == 0 {
		return Table{}, fmt.Errorf("barcode: no barcodes given")
	}
	return t, nil
}

func validate(bc string) error {
	for i := 0; i < len(bc); i++ {
		switch bc[i] {
		case 'A', 'C', 'G', 'T', 'N', '+':
		default:
			return fmt.Errorf("barcode: invalid base %q in %q", bc[i], bc)
		}
	}
	return nil
}
