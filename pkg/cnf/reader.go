package cnf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadDIMACS reports a malformed DIMACS CNF input.
var ErrBadDIMACS = errors.New("cnf: malformed DIMACS input")

// ReadDIMACS parses a DIMACS CNF file. Comment lines are skipped, the
// header fixes NumVars, and clause counts beyond the header are an error.
// The returned formula has no auxiliary mapping.
func ReadDIMACS(r io.Reader) (*Formula, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var f *Formula
	declared := 0
	var clause []int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			if f != nil {
				return nil, fmt.Errorf("%w: duplicate header", ErrBadDIMACS)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, fmt.Errorf("%w: header %q", ErrBadDIMACS, line)
			}
			nv, err1 := strconv.Atoi(fields[2])
			nc, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil || nv < 0 || nc < 0 {
				return nil, fmt.Errorf("%w: header %q", ErrBadDIMACS, line)
			}
			f = &Formula{NumVars: nv}
			declared = nc
			continue
		}
		if f == nil {
			return nil, fmt.Errorf("%w: clause before header", ErrBadDIMACS)
		}
		for _, tok := range strings.Fields(line) {
			lit, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: literal %q", ErrBadDIMACS, tok)
			}
			if lit == 0 {
				if len(f.Clauses) == declared {
					return nil, fmt.Errorf("%w: more clauses than the header declares", ErrBadDIMACS)
				}
				f.Clauses = append(f.Clauses, clause)
				clause = nil
				continue
			}
			if v := abs(lit); v > f.NumVars {
				return nil, fmt.Errorf("%w: literal %d exceeds declared variables", ErrBadDIMACS, lit)
			}
			clause = append(clause, lit)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: missing header", ErrBadDIMACS)
	}
	if len(clause) > 0 {
		return nil, fmt.Errorf("%w: unterminated clause", ErrBadDIMACS)
	}
	if len(f.Clauses) != declared {
		return nil, fmt.Errorf("%w: header declares %d clauses, found %d", ErrBadDIMACS, declared, len(f.Clauses))
	}
	return f, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
