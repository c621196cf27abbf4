package path

import (
	"strconv"
	"strings"
	"unicode"

	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
)

func errInvalidOp(op string) error {
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported path command %q", op)
}

// Parse reads an absolute M/L/Q/C/T path string. Commands may repeat their
// arguments implicitly, as in "L 1 2 3 4".
func Parse(s string) (Path, error) {
	toks := tokenize(s)
	var (
		out Path
		op  Op
	)
	for i := 0; i < len(toks); {
		tok := toks[i]
		if len(tok) == 1 && unicode.IsLetter(rune(tok[0])) {
			op = Op(tok[0])
			if op.arity() == 0 {
				return nil, errInvalidOp(tok)
			}
			i++
		} else if op == 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "path must start with a command, got %q", tok)
		}
		n := op.arity() * 2
		if i+n > len(toks) {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "command %s expects %d numbers", op, n)
		}
		seg := Segment{Op: op, Pts: make([]geom.Point, op.arity())}
		for j := range seg.Pts {
			x, err := strconv.ParseFloat(toks[i+2*j], 64)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "bad number")
			}
			y, err := strconv.ParseFloat(toks[i+2*j+1], 64)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "bad number")
			}
			seg.Pts[j] = geom.Pt(x, y)
		}
		i += n
		out = append(out, seg)
	}
	if len(out) > 0 && out[0].Op != Move {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "path must start with M")
	}
	return out, nil
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			flush()
			toks = append(toks, string(r))
		case r == '-' && cur.Len() > 0 && !strings.HasSuffix(cur.String(), "e"):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
