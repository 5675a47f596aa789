package profile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/profile"
)

func TestProfile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Profile Suite")
}

var _ = Describe("Store", func() {
	var (
		dir   string
		store *profile.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = profile.NewStoreAt(dir)
	})

	It("returns an empty profile before anything is saved", func() {
		p, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.DisplayName).To(BeEmpty())
		Expect(p.HouseName).To(BeEmpty())
		Expect(p.UpdatedAt.IsZero()).To(BeTrue())
	})

	It("persists the display name", func() {
		Expect(store.SetDisplayName("Ada")).To(Succeed())

		p, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.DisplayName).To(Equal("Ada"))
		Expect(p.UpdatedAt).To(BeTemporally("~", time.Now().UTC(), time.Minute))
	})

	It("persists the house name without clobbering the display name", func() {
		Expect(store.SetDisplayName("Ada")).To(Succeed())
		Expect(store.SetHouseName("Baker Street House")).To(Succeed())

		p, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.DisplayName).To(Equal("Ada"))
		Expect(p.HouseName).To(Equal("Baker Street House"))
	})

	It("survives a fresh store against the same directory", func() {
		Expect(store.SetHouseName("The Burrow")).To(Succeed())

		p, err := profile.NewStoreAt(dir).Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.HouseName).To(Equal("The Burrow"))
	})

	It("rejects a corrupt profile file", func() {
		Expect(os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{nope"), 0o644)).To(Succeed())

		_, err := store.Load()
		Expect(err).To(HaveOccurred())
	})
})
