package memory_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/memory"
	testutils "github.com/hearthhq/hearth/pkg/utils/test"
)

// legacySnapshot builds a version 1 snapshot the way old installations
// persisted it: generated ids and the original prompt wording.
func legacySnapshot() *memory.Snapshot {
	nameQ := memory.NewQuestion("What is your name?", memory.CategoryPersonal, memory.PriorityHigh, true, 0)
	addrQ := memory.NewQuestion("Where do you live?", memory.CategoryLocation, memory.PriorityHigh, true, 1)

	snap := memory.NewSnapshot()
	snap.SchemaVersion = 1
	snap.Questions = []memory.Question{nameQ, addrQ}
	snap.Notes = map[memory.QuestionID]*memory.Note{
		nameQ.ID: memory.NewNote(nameQ.ID, "Ada", nil),
	}
	return snap
}

var _ = Describe("Migrate", func() {
	It("is a no-op at the current version", func() {
		snap := memory.NewSnapshot()
		out, err := memory.Migrate(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeIdenticalTo(snap))
	})

	It("moves answers onto canonical question ids", func() {
		out, err := memory.Migrate(legacySnapshot())
		Expect(err).NotTo(HaveOccurred())

		Expect(out.SchemaVersion).To(Equal(memory.CurrentSchemaVersion))

		note := out.Notes[memory.QuestionUserName]
		Expect(note).NotTo(BeNil())
		Expect(note.Answer).To(Equal("Ada"))
		Expect(note.Metadata).To(HaveKeyWithValue(memory.MetaSource, memory.SourceMigration))
	})

	It("retires the legacy questions", func() {
		out, err := memory.Migrate(legacySnapshot())
		Expect(err).NotTo(HaveOccurred())

		for _, q := range out.Questions {
			Expect(q.Text).NotTo(Equal("What is your name?"))
			Expect(q.Text).NotTo(Equal("Where do you live?"))
		}

		_, ok := out.Question(memory.QuestionUserName)
		Expect(ok).To(BeTrue())
		_, ok = out.Question(memory.QuestionHomeAddress)
		Expect(ok).To(BeTrue())
	})

	It("leaves the input snapshot untouched", func() {
		in := legacySnapshot()
		questionCount := len(in.Questions)

		_, err := memory.Migrate(in)
		Expect(err).NotTo(HaveOccurred())

		Expect(in.SchemaVersion).To(Equal(1))
		Expect(in.Questions).To(HaveLen(questionCount))
	})

	It("fails when no path exists from the snapshot's version", func() {
		snap := memory.NewSnapshot()
		snap.SchemaVersion = -3

		_, err := memory.Migrate(snap)
		Expect(err).To(BeAssignableToTypeOf(memory.MigrationError{}))
	})

	It("runs at service startup for old records", func() {
		ctx := context.Background()
		store := testutils.NewMockStorage()

		legacy := legacySnapshot()
		data, err := legacy.Encode()
		Expect(err).NotTo(HaveOccurred())
		store.Seed = data

		svc, err := memory.NewService(ctx, store)
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = svc.Close() }()

		snap := svc.Snapshot()
		Expect(snap.SchemaVersion).To(Equal(memory.CurrentSchemaVersion))
		Expect(snap.Notes[memory.QuestionUserName].Answer).To(Equal("Ada"))
	})
})
