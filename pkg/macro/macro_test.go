package macro_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pepasm/pkg/asm"
	"pepasm/pkg/macro"
)

var _ = Describe("Registry", func() {
	var r *macro.Registry

	BeforeEach(func() {
		r = macro.NewRegistry()
	})

	It("should substitute positional arguments", func() {
		r.Insert("HI", 2, ";$1 and $2, $1 again")
		Expect(r.Has("HI")).To(BeTrue())
		body, err := r.Instantiate("HI", "x", "y")
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(Equal(";x and y, x again"))
	})

	It("should not confuse $1 with $10", func() {
		args := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
		r.Insert("TEN", 10, "$10 $1")
		body, err := r.Instantiate("TEN", args...)
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(Equal("j a"))
	})

	It("should reject the wrong argument count", func() {
		r.Insert("ONE", 1, "$1")
		_, err := r.Instantiate("ONE")
		Expect(err).To(MatchError(macro.ErrArgCount))
		_, err = r.Instantiate("ONE", "a", "b")
		Expect(err).To(MatchError(macro.ErrArgCount))
	})

	It("should reject unknown macros", func() {
		_, err := r.Instantiate("NOPE")
		Expect(err).To(MatchError(macro.ErrUnknown))
		Expect(r.Has("NOPE")).To(BeFalse())
	})

	Context("with the OS macros", func() {
		BeforeEach(func() {
			macro.AddOSMacros(r)
		})

		It("should register every trap", func() {
			Expect(r.Names()).To(Equal([]string{"DECI", "DECO", "HEXO", "SNOP", "STRO"}))
		})

		It("should expand to code that assembles", func() {
			body, err := r.Instantiate("DECO", "0x0010", "d")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(Equal("LDWA DECO,i\nSCALL 0x0010,d\n"))

			code, err := asm.Assemble(body)
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal([]byte{0xC0, 0x00, 0x01, 0x39, 0x00, 0x10}))
		})
	})
})
