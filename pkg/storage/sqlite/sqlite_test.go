package sqlite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/storage"
	"github.com/hearthhq/hearth/pkg/storage/sqlite"
)

func TestSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SQLite Storage Suite")
}

var _ = Describe("Driver", func() {
	var (
		ctx    context.Context
		driver *sqlite.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		driver, err = sqlite.NewDriver(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("NewDriver", func() {
		It("creates a driver with file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "memory.db")

			s, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			Expect(s.Save(ctx, []byte("record"))).To(Succeed())

			// Verify file was created
			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Load", func() {
		It("returns NotFoundError before the first save", func() {
			_, err := driver.Load(ctx)

			var notFound storage.NotFoundError
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("returns saved bytes", func() {
			Expect(driver.Save(ctx, []byte("record"))).To(Succeed())

			data, err := driver.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("record")))
		})
	})

	Describe("Save", func() {
		It("upserts the single record row", func() {
			Expect(driver.Save(ctx, []byte("first"))).To(Succeed())
			Expect(driver.Save(ctx, []byte("second"))).To(Succeed())

			data, err := driver.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("second")))
		})

		It("rejects a nil record", func() {
			Expect(driver.Save(ctx, nil)).NotTo(Succeed())
		})
	})
})
