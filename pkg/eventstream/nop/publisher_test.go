package nop_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/eventstream"
	"github.com/hearthhq/hearth/pkg/eventstream/nop"
)

func TestNop(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Nop Publisher Suite")
}

var _ = Describe("Publisher", func() {
	var pub *nop.Publisher

	BeforeEach(func() {
		pub = nop.NewPublisher()
	})

	It("accepts a well-formed event", func() {
		event := eventstream.NewSnapshotUpdatedEvent("save_note", "user-name", 2, 7, 1)
		Expect(pub.PublishSnapshotUpdated(context.Background(), event)).To(Succeed())
	})

	It("rejects a nil event", func() {
		err := pub.PublishSnapshotUpdated(context.Background(), nil)
		Expect(err).To(MatchError(eventstream.ErrNilEvent))
	})

	It("closes cleanly", func() {
		Expect(pub.Close()).To(Succeed())
	})
})
