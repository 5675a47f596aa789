package dotdir_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/dotdir"
)

func TestDotdir(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dotdir Suite")
}

var _ = Describe("Manager", func() {
	var mgr *dotdir.Manager

	BeforeEach(func() {
		mgr = dotdir.NewManager()
	})

	Describe("Target", func() {
		It("prefers the override directory", func() {
			dir := GinkgoT().TempDir()

			target, err := mgr.Target(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal(dir))
		})

		It("creates the override directory when missing", func() {
			dir := filepath.Join(GinkgoT().TempDir(), "nested", ".hearth")

			target, err := mgr.Target(dir)
			Expect(err).NotTo(HaveOccurred())

			info, err := os.Stat(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})

		It("returns an absolute path", func() {
			target, err := mgr.Target(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.IsAbs(target)).To(BeTrue())
		})
	})
})
