package genbank

import (
	"fmt"
	"strings"

	"github.com/nucleobase/insdc/gbkerr"
)

// locusFields is what a LOCUS line, in any of its seven historical
// dialects, resolves to.
type locusFields struct {
	Name             string
	Size             int
	HasSize          bool
	ResidueType      string
	MoleculeType     string
	Topology         string
	DataFileDivision string
	Date             string
}

func isResidueUnit(tok string) bool {
	return tok == "bp" || tok == "aa" || tok == "rc"
}

func isTopology(tok string) bool {
	return tok == "" || tok == "linear" || tok == "circular"
}

// parseLocus dispatches across the dialects documented in the GenBank
// scanner design notes, trying each signature in order and taking the
// first match, the same "try the narrowest shape first" strategy the
// teacher's own parseLocus uses (it special-cases the truncated/EnsEMBL
// forms before falling through to fixed-column parsing).
func parseLocus(line string) (locusFields, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return locusFields{}, gbkerr.New(gbkerr.UnrecognizedLocus, 0, "LOCUS line has no name field")
	}
	name := fields[1]

	// Truncated: "LOCUS" plus a single name field and nothing else.
	if len(fields) == 2 {
		return locusFields{Name: name}, nil
	}

	if lf, ok := parseLocusOldFixed(line, fields); ok {
		return lf, nil
	}
	if lf, ok := parseLocusNewFixed(line, fields); ok {
		return lf, nil
	}
	if lf, ok := parseLocusInvalidSpacing(fields); ok {
		return lf, nil
	}
	if lf, ok := parseLocusEnsEMBL(fields); ok {
		return lf, nil
	}
	if lf, ok := parseLocusEMBOSS(fields); ok {
		return lf, nil
	}
	if lf, ok := parseLocusPseudoGB(fields); ok {
		return lf, nil
	}
	return locusFields{}, gbkerr.New(gbkerr.UnrecognizedLocus, 0, fmt.Sprintf("no LOCUS dialect matched %q", line))
}

func atoiSize(tok string) (int, bool) {
	n := 0
	if tok == "" {
		return 0, false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// parseLocusOldFixed matches the pre-2007 fixed-column LOCUS layout: a
// residue-unit token at byte offset [29,33) and blank columns [55,62).
func parseLocusOldFixed(line string, fields []string) (locusFields, bool) {
	if len(line) < 62 {
		return locusFields{}, false
	}
	unit := strings.TrimSpace(line[29:33])
	if !isResidueUnit(unit) {
		return locusFields{}, false
	}
	if strings.TrimSpace(line[55:62]) != "" {
		return locusFields{}, false
	}
	size, ok := atoiSize(strings.Fields(line[20:29])[0])
	if !ok {
		return locusFields{}, false
	}
	lf := locusFields{Name: fields[1], Size: size, HasSize: true, ResidueType: unit}
	lf.MoleculeType = strings.TrimSpace(line[33:53])
	lf.DataFileDivision = strings.TrimSpace(line[53:55])
	if len(line) > 62 {
		lf.Date = strings.TrimSpace(line[62:])
	}
	return lf, true
}

// parseLocusNewFixed matches the post-2007 fixed-column layout: a
// residue-unit token at [40,44) and topology at [54,64).
func parseLocusNewFixed(line string, fields []string) (locusFields, bool) {
	if len(line) < 64 {
		return locusFields{}, false
	}
	unit := strings.TrimSpace(line[40:44])
	if !isResidueUnit(unit) {
		return locusFields{}, false
	}
	topology := strings.ToLower(strings.TrimSpace(line[54:64]))
	if !isTopology(topology) {
		return locusFields{}, false
	}
	size, ok := atoiSize(strings.Fields(line[28:40])[0])
	if !ok {
		return locusFields{}, false
	}
	lf := locusFields{Name: fields[1], Size: size, HasSize: true, ResidueType: unit, Topology: topology}
	lf.MoleculeType = strings.TrimSpace(line[44:54])
	if len(line) >= 79 {
		lf.DataFileDivision = strings.TrimSpace(line[64:67])
		lf.Date = strings.TrimSpace(line[68:])
	}
	return lf, true
}

// parseLocusInvalidSpacing matches a whitespace-split LOCUS line with
// exactly 8 tokens where bp/aa sits at index 3 and linear/circular at 5.
func parseLocusInvalidSpacing(fields []string) (locusFields, bool) {
	if len(fields) != 8 || !isResidueUnit(fields[3]) {
		return locusFields{}, false
	}
	topology := strings.ToLower(fields[5])
	if topology != "linear" && topology != "circular" {
		return locusFields{}, false
	}
	size, ok := atoiSize(fields[2])
	if !ok {
		return locusFields{}, false
	}
	return locusFields{
		Name: fields[1], Size: size, HasSize: true, ResidueType: fields[3],
		MoleculeType: fields[4], Topology: topology, DataFileDivision: fields[6], Date: fields[7],
	}, true
}

// parseLocusEnsEMBL matches EnsEMBL's 7-token LOCUS line.
func parseLocusEnsEMBL(fields []string) (locusFields, bool) {
	if len(fields) != 7 || !isResidueUnit(fields[3]) {
		return locusFields{}, false
	}
	size, ok := atoiSize(fields[2])
	if !ok {
		return locusFields{}, false
	}
	return locusFields{
		Name: fields[1], Size: size, HasSize: true, ResidueType: fields[3],
		MoleculeType: fields[4], DataFileDivision: fields[5], Date: fields[6],
	}, true
}

// parseLocusEMBOSS matches EMBOSS's LOCUS line: at least 4 tokens with
// bp/aa at index 3.
func parseLocusEMBOSS(fields []string) (locusFields, bool) {
	if len(fields) < 4 || !isResidueUnit(fields[3]) {
		return locusFields{}, false
	}
	size, ok := atoiSize(fields[2])
	if !ok {
		return locusFields{}, false
	}
	lf := locusFields{Name: fields[1], Size: size, HasSize: true, ResidueType: fields[3]}
	if len(fields) > 4 {
		lf.MoleculeType = fields[4]
	}
	return lf, true
}

// parseLocusPseudoGB matches a pseudo-GenBank line: at least 4 tokens
// with the residue unit as the final token.
func parseLocusPseudoGB(fields []string) (locusFields, bool) {
	if len(fields) < 4 || !isResidueUnit(fields[len(fields)-1]) {
		return locusFields{}, false
	}
	size, ok := atoiSize(fields[2])
	if !ok {
		return locusFields{}, false
	}
	return locusFields{Name: fields[1], Size: size, HasSize: true, ResidueType: fields[len(fields)-1]}, true
}
