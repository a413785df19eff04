package query

import (
	"regexp"
	"strings"
)

type extensionKind int

const (
	extNone extensionKind = iota
	extLength
	extAggregate
	extNumeric
	extDate
	extArray
	extString
)

const (
	opSum         = "sum"
	opAvg         = "avg"
	opMin         = "min"
	opMax         = "max"
	opMath        = "math"
	opRound       = "round"
	opFloor       = "floor"
	opCeil        = "ceil"
	opAbs         = "abs"
	opSqrt        = "sqrt"
	opPow2        = "pow2"
	opFormat      = "format"
	opIsToday     = "isToday"
	opToLowerCase = "toLowerCase"
	opToUpperCase = "toUpperCase"
	opStartsWith  = "startsWith"
	opEndsWith    = "endsWith"
	opContains    = "contains"
	opMatches     = "matches"
)

const lengthExpression = "$.length()"

// One regexp per operator family. Matching is leftmost, so when an
// expression carries several tokens of the same family the earliest one
// splits off the base path.
var (
	aggregateRe = regexp.MustCompile(`\.(sum|avg|min|max)\((\w+)\)`)
	numericRe   = regexp.MustCompile(`\.(?:(math)\((.+)\)|(round|floor|ceil|abs|sqrt|pow2)\(\))`)
	dateRe      = regexp.MustCompile(`\.(?:(format)\((?:'([^']*)'|"([^"]*)")\)|(isToday)\(\))`)
	arrayRe     = regexp.MustCompile(`\.sort\(-?\w+\)|\.distinct\(\)|\.reverse\(\)|\[\d*:\d*\]`)
	stringRe    = regexp.MustCompile(`\.(?:(toLowerCase|toUpperCase)\(\)|(startsWith|endsWith|contains|matches)\((?:'([^']*)'|"([^"]*)")\))`)
)

// parsedExtension is the router verdict for one expression: which operator
// family applies, the base path in front of the first operator token, and
// the operator's name and argument. For the array family the raw remainder
// is kept instead, since its operators combine.
type parsedExtension struct {
	kind      extensionKind
	basePath  string
	op        string
	arg       string
	remainder string
}

// parseExtension classifies an expression into exactly one operator family.
// Families are probed in a fixed order, so a mixed expression such as
// $.items.sort(price).sum(price) is an aggregation whose base path is
// $.items.sort(price), not an array operation.
func parseExtension(expression string) parsedExtension {
	if strings.TrimSpace(expression) == lengthExpression {
		return parsedExtension{kind: extLength}
	}

	if loc := aggregateRe.FindStringSubmatchIndex(expression); loc != nil {
		return parsedExtension{
			kind:     extAggregate,
			basePath: expression[:loc[0]],
			op:       submatch(expression, loc, 1),
			arg:      submatch(expression, loc, 2),
		}
	}

	if loc := numericRe.FindStringSubmatchIndex(expression); loc != nil {
		op := submatch(expression, loc, 1)
		if op == "" {
			op = submatch(expression, loc, 3)
		}
		return parsedExtension{
			kind:     extNumeric,
			basePath: expression[:loc[0]],
			op:       op,
			arg:      submatch(expression, loc, 2),
		}
	}

	if loc := dateRe.FindStringSubmatchIndex(expression); loc != nil {
		op := submatch(expression, loc, 1)
		if op == "" {
			op = submatch(expression, loc, 4)
		}
		return parsedExtension{
			kind:     extDate,
			basePath: expression[:loc[0]],
			op:       op,
			arg:      submatch(expression, loc, 2) + submatch(expression, loc, 3),
		}
	}

	if loc := arrayRe.FindStringIndex(expression); loc != nil {
		return parsedExtension{
			kind:      extArray,
			basePath:  expression[:loc[0]],
			remainder: expression[loc[0]:],
		}
	}

	if loc := stringRe.FindStringSubmatchIndex(expression); loc != nil {
		op := submatch(expression, loc, 1)
		if op == "" {
			op = submatch(expression, loc, 2)
		}
		return parsedExtension{
			kind:     extString,
			basePath: expression[:loc[0]],
			op:       op,
			// at most one of the two quote groups can match
			arg: submatch(expression, loc, 3) + submatch(expression, loc, 4),
		}
	}

	return parsedExtension{kind: extNone}
}

func submatch(expression string, loc []int, i int) string {
	if loc[2*i] < 0 {
		return ""
	}
	return expression[loc[2*i]:loc[2*i+1]]
}
