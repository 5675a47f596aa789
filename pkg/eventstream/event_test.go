package eventstream_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/eventstream"
)

func TestEventstream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Eventstream Suite")
}

var _ = Describe("NewSnapshotUpdatedEvent", func() {
	It("fills envelope fields", func() {
		event := eventstream.NewSnapshotUpdatedEvent("delete_question", "house-name", 2, 6, 3)

		Expect(event.SchemaVersion).To(Equal(eventstream.SchemaVersionV1))
		Expect(event.EventType).To(Equal(eventstream.EventTypeSnapshotUpdated))
		Expect(event.EventID).NotTo(BeEmpty())
		Expect(event.EmittedAt).To(BeTemporally("~", time.Now().UTC(), time.Minute))

		Expect(event.Mutation).To(Equal("delete_question"))
		Expect(event.QuestionID).To(Equal("house-name"))
		Expect(event.StoreSchemaVersion).To(Equal(2))
		Expect(event.QuestionCount).To(Equal(6))
		Expect(event.NoteCount).To(Equal(3))
	})

	It("issues a distinct id per event", func() {
		a := eventstream.NewSnapshotUpdatedEvent("save_note", "", 2, 7, 0)
		b := eventstream.NewSnapshotUpdatedEvent("save_note", "", 2, 7, 0)
		Expect(a.EventID).NotTo(Equal(b.EventID))
	})
})
