package flow_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/address"
	"github.com/hearthhq/hearth/pkg/flow"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/profile"
	testutils "github.com/hearthhq/hearth/pkg/utils/test"
)

func TestFlow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Flow Suite")
}

var _ = Describe("Machine", func() {
	var (
		ctx     context.Context
		store   *testutils.MockStorage
		svc     *memory.Service
		adapter *testutils.MockAddressAdapter
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = testutils.NewMockStorage()
		adapter = testutils.NewMockAddressAdapter()

		var err error
		svc, err = memory.NewService(ctx, store)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = svc.Close()
	})

	newMachine := func(opts ...flow.MachineOption) *flow.Machine {
		base := []flow.MachineOption{
			flow.WithProfileStore(profile.NewStoreAt(GinkgoT().TempDir())),
			flow.WithAddressAdapter(adapter),
		}
		return flow.NewMachine(svc, append(base, opts...)...)
	}

	Describe("Start", func() {
		It("asks the highest priority question", func() {
			m := newMachine()

			state := m.Start(ctx)
			waiting, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionUserName))
		})

		It("goes straight to Completed when nothing is pending", func() {
			for _, q := range svc.Snapshot().SortedQuestions() {
				Expect(svc.SaveOrUpdateNote(ctx, q.ID, "answered", nil)).To(Succeed())
			}

			m := newMachine()
			Expect(m.Start(ctx)).To(BeAssignableToTypeOf(flow.Completed{}))
		})
	})

	Describe("ProcessInput", func() {
		It("saves the answer and advances to the next question", func() {
			m := newMachine()
			m.Start(ctx)

			state := m.ProcessInput(ctx, "Ada")

			note := svc.GetNote(memory.QuestionUserName)
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal("Ada"))
			Expect(note.Metadata).To(HaveKeyWithValue(memory.MetaSource, memory.SourceInteractive))

			waiting, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionHomeAddress))
		})

		It("ignores input while idle", func() {
			m := newMachine()
			Expect(m.ProcessInput(ctx, "hello")).To(BeAssignableToTypeOf(flow.Idle{}))
		})

		It("ignores blank input", func() {
			m := newMachine()
			m.Start(ctx)

			state := m.ProcessInput(ctx, "   ")
			waiting, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionUserName))
			Expect(svc.GetNote(memory.QuestionUserName)).To(BeNil())
		})

		It("runs the whole flow to Completed", func() {
			completed := false
			m := newMachine(flow.WithOnComplete(func() { completed = true }))

			state := m.Start(ctx)
			for range 20 {
				waiting, ok := state.(flow.WaitingForAnswer)
				if !ok {
					break
				}
				state = m.ProcessInput(ctx, "answer for "+string(waiting.Question.ID))
			}

			Expect(state).To(BeAssignableToTypeOf(flow.Completed{}))
			Expect(m.CompletedAll()).To(BeTrue())
			Expect(completed).To(BeTrue())
		})

		It("transitions to Failed when persistence fails", func() {
			m := newMachine()
			m.Start(ctx)

			store.FailSave = true
			state := m.ProcessInput(ctx, "Ada")

			failed, ok := state.(flow.Failed)
			Expect(ok).To(BeTrue())
			Expect(failed.Message).NotTo(BeEmpty())
		})
	})

	Describe("acknowledgment handling", func() {
		answerUpTo := func(m *flow.Machine, target memory.QuestionID) flow.State {
			state := m.Start(ctx)
			for {
				waiting, ok := state.(flow.WaitingForAnswer)
				Expect(ok).To(BeTrue())
				if waiting.Question.ID == target {
					return state
				}
				state = m.ProcessInput(ctx, "answer for "+string(waiting.Question.ID))
			}
		}

		It("ignores ack tokens on confirmation questions", func() {
			m := newMachine()
			answerUpTo(m, memory.QuestionAddressConfirm)

			state := m.ProcessInput(ctx, "ok")
			waiting, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionAddressConfirm))
			Expect(svc.GetNote(memory.QuestionAddressConfirm)).To(BeNil())
		})

		It("matches tokens case-insensitively", func() {
			m := newMachine()
			answerUpTo(m, memory.QuestionAddressConfirm)

			state := m.ProcessInput(ctx, "  YES  ")
			waiting, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionAddressConfirm))
		})

		It("treats substantive confirmation replies as corrected answers", func() {
			adapter.ParseResult = &address.Address{
				Street: "221b Baker Street",
				City:   "London",
				Raw:    "221b Baker Street, London",
			}

			m := newMachine()
			answerUpTo(m, memory.QuestionAddressConfirm)

			m.ProcessInput(ctx, "actually it is 221b Baker Street, London")
			note := svc.GetNote(memory.QuestionAddressConfirm)
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal("221b Baker Street, London"))
		})

		It("honors a configured token set", func() {
			m := newMachine(flow.WithAckTokens([]string{"roger"}))
			answerUpTo(m, memory.QuestionAddressConfirm)

			state := m.ProcessInput(ctx, "roger")
			_, stillWaiting := state.(flow.WaitingForAnswer)
			Expect(stillWaiting).To(BeTrue())

			// "ok" is no longer an ack with the custom set.
			m.ProcessInput(ctx, "ok")
			Expect(svc.GetNote(memory.QuestionAddressConfirm)).NotTo(BeNil())
		})

		It("does not treat ack tokens specially outside confirmation", func() {
			m := newMachine()
			m.Start(ctx)

			m.ProcessInput(ctx, "ok")
			note := svc.GetNote(memory.QuestionUserName)
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal("ok"))
		})
	})

	Describe("category hooks", func() {
		It("canonicalizes location answers through the adapter", func() {
			adapter.ParseResult = &address.Address{
				Street:     "221b Baker Street",
				City:       "London",
				PostalCode: "NW1 6XE",
				Raw:        "221b baker street london NW1 6XE",
			}

			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")
			m.ProcessInput(ctx, "221b baker street london NW1 6XE")

			note := svc.GetNote(memory.QuestionHomeAddress)
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal(adapter.ParseResult.String()))
			Expect(note.Metadata).To(HaveKeyWithValue("postal_code", "NW1 6XE"))
		})

		It("falls back to the raw answer when the adapter fails", func() {
			adapter.FailParse = true

			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")
			state := m.ProcessInput(ctx, "somewhere leafy")

			note := svc.GetNote(memory.QuestionHomeAddress)
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal("somewhere leafy"))

			// Adapter failure never fails the flow.
			_, ok := state.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
		})

		It("updates the profile display name from the name question", func() {
			profiles := profile.NewStoreAt(GinkgoT().TempDir())
			m := flow.NewMachine(svc,
				flow.WithProfileStore(profiles),
				flow.WithAddressAdapter(adapter),
			)

			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")

			p, err := profiles.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(p.DisplayName).To(Equal("Ada"))
		})

		It("supports overriding a category hook", func() {
			m := newMachine(flow.WithHook(memory.CategoryPersonal,
				func(_ context.Context, _ memory.Question, answer string) (string, map[string]string, error) {
					return "custom:" + answer, map[string]string{"hooked": "true"}, nil
				}))

			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")

			note := svc.GetNote(memory.QuestionUserName)
			Expect(note.Answer).To(Equal("custom:Ada"))
			Expect(note.Metadata).To(HaveKeyWithValue("hooked", "true"))
		})
	})

	Describe("Suggestion", func() {
		It("offers a detected address for location questions", func() {
			adapter.Detected = &address.Address{Street: "1 Main St", City: "Springfield"}

			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")

			Expect(m.Suggestion(ctx)).To(Equal(adapter.Detected.String()))
		})

		It("returns empty when detection is unavailable", func() {
			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")

			Expect(m.Suggestion(ctx)).To(Equal(""))
		})

		It("offers the stored address for confirmation questions", func() {
			adapter.ParseResult = &address.Address{
				Street: "1 Main St",
				City:   "Springfield",
				Raw:    "1 Main St, Springfield",
			}

			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")
			m.ProcessInput(ctx, "1 Main St, Springfield")

			waiting, ok := m.Current().(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionAddressConfirm))

			Expect(m.Suggestion(ctx)).To(Equal(adapter.ParseResult.String()))
		})

		It("offers a generated house name once the address is known", func() {
			adapter.ParseResult = &address.Address{Street: "1 Main St", Raw: "1 Main St"}
			adapter.HouseName = "Main Street House"

			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")
			m.ProcessInput(ctx, "1 Main St")
			m.ProcessInput(ctx, "looks right to me, use that one please")

			waiting, ok := m.Current().(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.Category).To(Equal(memory.CategoryHouse))

			Expect(m.Suggestion(ctx)).To(Equal("Main Street House"))
		})
	})

	Describe("Skip", func() {
		It("passes over optional questions for the session", func() {
			m := newMachine()
			state := m.Start(ctx)

			for {
				waiting, ok := state.(flow.WaitingForAnswer)
				Expect(ok).To(BeTrue())
				if !waiting.Question.Required {
					break
				}
				state = m.ProcessInput(ctx, "answer for "+string(waiting.Question.ID))
			}

			skippedID := state.(flow.WaitingForAnswer).Question.ID
			state = m.Skip(ctx)

			if waiting, ok := state.(flow.WaitingForAnswer); ok {
				Expect(waiting.Question.ID).NotTo(Equal(skippedID))
			}
			Expect(svc.GetNote(skippedID)).To(BeNil())
		})

		It("refuses to skip required questions", func() {
			m := newMachine()
			state := m.Start(ctx)
			Expect(state.(flow.WaitingForAnswer).Question.Required).To(BeTrue())

			after := m.Skip(ctx)
			Expect(after).To(Equal(state))
		})

		It("forgets skips on Reset", func() {
			m := newMachine()
			state := m.Start(ctx)
			for {
				waiting := state.(flow.WaitingForAnswer)
				if !waiting.Question.Required {
					break
				}
				state = m.ProcessInput(ctx, "answer for "+string(waiting.Question.ID))
			}
			skippedID := state.(flow.WaitingForAnswer).Question.ID

			m.Skip(ctx)
			m.Reset()

			restarted := m.Start(ctx)
			Expect(restarted.(flow.WaitingForAnswer).Question.ID).To(Equal(skippedID))
		})
	})

	Describe("Reset", func() {
		It("returns to Idle without touching saved answers", func() {
			m := newMachine()
			m.Start(ctx)
			m.ProcessInput(ctx, "Ada")

			m.Reset()
			Expect(m.Current()).To(BeAssignableToTypeOf(flow.Idle{}))
			Expect(svc.GetNote(memory.QuestionUserName)).NotTo(BeNil())
		})

		It("recovers from Failed", func() {
			m := newMachine()
			m.Start(ctx)

			store.FailSave = true
			Expect(m.ProcessInput(ctx, "Ada")).To(BeAssignableToTypeOf(flow.Failed{}))

			store.FailSave = false
			m.Reset()
			state := m.Start(ctx)
			Expect(state).To(BeAssignableToTypeOf(flow.WaitingForAnswer{}))
		})
	})

	Describe("re-confirmation", func() {
		It("re-asks flagged questions before finishing", func() {
			m := newMachine()
			state := m.Start(ctx)
			for {
				waiting, ok := state.(flow.WaitingForAnswer)
				if !ok {
					break
				}
				state = m.ProcessInput(ctx, "answer for "+string(waiting.Question.ID))
			}
			Expect(m.CompletedAll()).To(BeTrue())

			Expect(svc.SetReviewFlag(ctx, memory.QuestionHouseName, true)).To(Succeed())

			m.Reset()
			restarted := m.Start(ctx)
			waiting, ok := restarted.(flow.WaitingForAnswer)
			Expect(ok).To(BeTrue())
			Expect(waiting.Question.ID).To(Equal(memory.QuestionHouseName))

			// Answering clears the flag.
			m.ProcessInput(ctx, "The Burrow")
			Expect(svc.GetNote(memory.QuestionHouseName).NeedsReview()).To(BeFalse())
			Expect(m.CompletedAll()).To(BeTrue())
		})
	})
})
