package indent

// TreeConfig holds the settings read when a tree is built.
type TreeConfig struct {
	// AutoCloseComments selects the comment subtree that writes a closing
	// "*/" line when a block comment is opened.
	AutoCloseComments bool
}

// caseNotPattern lists the words that make a leading "case" a Scala
// declaration rather than a pattern-match branch.
var caseNotPattern = []string{"class", "object"}

// BuildTree assembles the decision tree for the given indent width.
// Construction has no side effects; the result is immutable and may be
// shared.
func BuildTree(indentLevel int, cfg TreeConfig) Rule {
	// Code subtree, leaves first.
	samePrevLine := StartPrevLinePlus("")
	newStmt := StartPrevStmtPlus(0, true, indentLevel)
	continuation := StartCurrStmtPlus(2)
	caseBranch := StartStmtOfBracePlus(indentLevel, false)
	elseBranch := StartLineOf("if")

	// A continuation that opens with '{' is not indented further.
	braceContinuation := CurrLineStartsWithChar("{", StartCurrStmtPlus(0), continuation)

	// A pattern-match case aligns one level inside its enclosing brace; the
	// "=>" of the previous branch does not count as a brace.
	isCase := CurrLineStartsWith("case", caseNotPattern, caseBranch, newStmt)
	// An else matches its if.
	isElse := CurrLineStartsWith("else", nil, elseBranch, isCase)
	isNewStmt := StartingNewStmt(isElse, braceContinuation)

	afterAnnotation := PrevLineStartsWith("@", samePrevLine, isNewStmt)
	afterOpenBrace := StartAfterOpenBrace(BracePlus(1), afterAnnotation)
	immedAfterOpenBrace := StartImmedAfterOpenBrace(StartStmtOfBracePlus(indentLevel, true), afterOpenBrace)

	// A line opening with a closing bracket lines up with the statement
	// that opened it.
	closing := CurrLineStartsWithChar(")}", StartStmtOfBracePlus(0, false), immedAfterOpenBrace)
	code := CurrLineIsWingComment(DoNothing(), closing)

	return InsideComment(buildCommentTree(cfg), code)
}

func buildCommentTree(cfg TreeConfig) Rule {
	same := StartPrevLinePlus("")
	star := StartPrevLinePlus("* ")

	// Interior lines of a comment whose opener is on the previous line.
	// "/** text" openers pad with two columns so stars line up under the
	// second star of the opener.
	opened := CurrLineEmptyOrEnterPress(
		PrevLineStartsJavaDocWithText(StartPrevLinePlus("  * "), StartPrevLinePlus(" * ")),
		PrevLineStartsJavaDocWithText(StartPrevLinePlus("  "), StartPrevLinePlus(" ")),
	)
	if cfg.AutoCloseComments {
		closeComment := PrevLineStartsJavaDocWithText(
			StartPrevLinePlusMultilinePreserve([]string{"  * \n", "  */"}, 0, 4, 0, 4),
			StartPrevLinePlusMultilinePreserve([]string{" * \n", " */"}, 0, 3, 0, 3),
		)
		opened = CurrLineEmpty(closeComment, opened)
	}

	// Deeper lines follow the star column of the line above.
	continued := PrevLineStartsWith("*",
		CurrLineStartsWith("*", nil, same, CurrLineEmptyOrEnterPress(star, same)),
		same,
	)

	return PrevLineStartsComment(opened, continued)
}
