package expr_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pepasm/pkg/asm"
	"pepasm/pkg/expr"
)

var _ = Describe("Lexer", func() {
	It("should scan operators, parentheses and literals", func() {
		toks := expr.NewLexer("(12+ -3)*0\n").Tokens()
		Expect(toks).To(Equal([]expr.Token{
			{Type: expr.PAREN_OPEN},
			{Type: expr.DECIMAL, Value: 12},
			{Type: expr.PLUS},
			{Type: expr.DECIMAL, Value: -3},
			{Type: expr.PAREN_CLOSE},
			{Type: expr.TIMES},
			{Type: expr.DECIMAL, Value: 0},
			{Type: expr.EMPTY},
		}))
	})

	It("should reject a sign without digits", func() {
		toks := expr.NewLexer("- 1").Tokens()
		Expect(toks[0].Type).To(Equal(expr.INVALID))
	})

	It("should end without an extra EMPTY", func() {
		Expect(expr.NewLexer("").Tokens()).To(BeEmpty())
	})
})

var _ = Describe("Parser", func() {
	DescribeTable("postfix order",
		func(text, want string) {
			postfix, err := expr.Parse(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(expr.ExpressionString(postfix)).To(Equal(want))
		},
		Entry("precedence", "2 + 3 * 4", "2 3 4 * +"),
		Entry("parentheses", "(2 + 3) * 4", "2 3 + 4 *"),
		Entry("right associative sum", "1 + 2 + 3", "1 2 3 + +"),
		Entry("right associative product", "1*2*3", "1 2 3 * *"),
		Entry("single literal", " 42 ", "42"),
		Entry("negative literal", "-5 * 2", "-5 2 *"),
		Entry("nested", "((7))", "7"),
	)

	DescribeTable("syntax errors",
		func(text string) {
			_, err := expr.Parse(text)
			var se *expr.SyntaxError
			Expect(err).To(BeAssignableToTypeOf(se))
		},
		Entry("dangling operator", "2 +"),
		Entry("unclosed parenthesis", "(2"),
		Entry("juxtaposed literals", "2 3"),
		Entry("letters", "a"),
		Entry("empty", ""),
		Entry("stray close", "2)"),
	)
})

var _ = Describe("ToIR", func() {
	var symbols *asm.SymbolTable

	BeforeEach(func() {
		symbols = asm.NewSymbolTable()
	})

	It("should resolve every runtime symbol", func() {
		_, lines, err := expr.Compile("2 + 3 * 4", symbols)
		Expect(err).NotTo(HaveOccurred())

		program, diags := asm.Generate(lines, 0)
		Expect(diags).To(BeEmpty())
		Expect(program).NotTo(BeEmpty())
		for _, name := range []string{expr.PlusLabel, expr.TimesLabel, "tmLoop", "tmShift", "tmDone"} {
			sym, ok := symbols.Lookup(name)
			Expect(ok).To(BeTrue(), name)
			Expect(sym.IsUndefined()).To(BeFalse(), name)
			Expect(sym.IsMultiplyDefined()).To(BeFalse(), name)
		}
	})

	It("should push a literal and return it", func() {
		_, lines, err := expr.Compile("2", symbols)
		Expect(err).NotTo(HaveOccurred())
		program, diags := asm.Generate(lines, 0)
		Expect(diags).To(BeEmpty())

		code := asm.ObjectCode(program)
		Expect(code[:16]).To(Equal([]byte{
			0xC0, 0x00, 0x02, // LDWA 2,i
			0x48, 0x00, 0x02, // SUBSP 2,i
			0xE3, 0x00, 0x00, // STWA 0,s
			0xC3, 0x00, 0x00, // LDWA 0,s
			0x40, 0x00, 0x02, // ADDSP 2,i
			0x01, // RET
		}))
		plus, _ := symbols.Lookup(expr.PlusLabel)
		Expect(plus.Int()).To(Equal(16))
	})

	It("should call the runtime for each operator", func() {
		_, lines, err := expr.Compile("1 * 2 + 3", symbols)
		Expect(err).NotTo(HaveOccurred())
		var calls []string
		for _, src := range asm.Source(lines) {
			if strings.Contains(src, "CALL") {
				calls = append(calls, strings.TrimSpace(src))
			}
		}
		Expect(calls).To(Equal([]string{"CALL   times,i", "CALL   plus,i"}))
	})

	It("should lead with the postfix form as a comment", func() {
		_, lines, err := expr.Compile("(1+2)*3", symbols)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines[0]).To(Equal(&asm.CommentLine{Comment: "1 2 + 3 *"}))
	})

	It("should reject literals that do not fit in a word", func() {
		_, _, err := expr.Compile("70000 + 1", symbols)
		Expect(err).To(HaveOccurred())
	})

	It("should assemble through the listing emitter", func() {
		_, lines, err := expr.Compile("3*3", symbols)
		Expect(err).NotTo(HaveOccurred())
		asm.Generate(lines, 0)
		rows := asm.ProgramListing(lines)
		Expect(rows[1]).To(HavePrefix("0000 C00003"))
	})
})
