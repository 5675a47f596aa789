package mcp

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	hearthlogger "github.com/hearthhq/hearth/pkg/logger"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/inmemory"
)

var _ = Describe("Tool handlers", func() {
	var (
		ctx    context.Context
		svc    *memory.Service
		server *Server
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		svc, err = memory.NewService(ctx, inmemory.NewDriver())
		Expect(err).NotTo(HaveOccurred())

		server, err = NewServer(Config{
			Service: svc,
			Logger:  hearthlogger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("next_question", func() {
		It("returns the first unanswered question", func() {
			result, output, err := server.handleNextQuestion(ctx, nil, NextQuestionInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())

			Expect(output.Done).To(BeFalse())
			Expect(output.ID).To(Equal("user-name"))
			Expect(output.Required).To(BeTrue())
		})

		It("reports done when everything is answered", func() {
			for _, q := range svc.Snapshot().SortedQuestions() {
				Expect(svc.SaveOrUpdateNote(ctx, q.ID, "answered", nil)).To(Succeed())
			}

			_, output, err := server.handleNextQuestion(ctx, nil, NextQuestionInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Done).To(BeTrue())
			Expect(output.ID).To(BeEmpty())
		})
	})

	Describe("answer_question", func() {
		It("saves the answer with an mcp source tag", func() {
			_, output, err := server.handleAnswerQuestion(ctx, nil, AnswerQuestionInput{
				QuestionID: "user-name",
				Answer:     "Ada",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Saved).To(BeTrue())

			note := svc.GetNote("user-name")
			Expect(note).NotTo(BeNil())
			Expect(note.Answer).To(Equal("Ada"))
			Expect(note.Metadata).To(HaveKeyWithValue(memory.MetaSource, memory.SourceMCP))
		})

		It("replaces a prior answer", func() {
			for _, answer := range []string{"Ada", "Grace"} {
				_, _, err := server.handleAnswerQuestion(ctx, nil, AnswerQuestionInput{
					QuestionID: "user-name",
					Answer:     answer,
				})
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(svc.GetNote("user-name").Answer).To(Equal("Grace"))
		})

		It("flags an unknown question as a tool error", func() {
			result, output, err := server.handleAnswerQuestion(ctx, nil, AnswerQuestionInput{
				QuestionID: "nope",
				Answer:     "x",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
			Expect(output.Saved).To(BeFalse())
		})

		It("flags an empty answer as a tool error", func() {
			result, _, err := server.handleAnswerQuestion(ctx, nil, AnswerQuestionInput{
				QuestionID: "user-name",
				Answer:     "   ",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
		})
	})

	Describe("recall_answers", func() {
		BeforeEach(func() {
			Expect(svc.SaveOrUpdateNote(ctx, "user-name", "Ada", nil)).To(Succeed())
			Expect(svc.SaveOrUpdateNote(ctx, "home-address", "221b Baker Street, London", nil)).To(Succeed())
		})

		It("returns every saved answer without filters", func() {
			_, output, err := server.handleRecallAnswers(ctx, nil, RecallAnswersInput{})
			Expect(err).NotTo(HaveOccurred())

			Expect(output.Count).To(Equal(2))
			Expect(output.Answers[0].QuestionID).To(Equal("user-name"))
			Expect(output.Answers[1].QuestionID).To(Equal("home-address"))
		})

		It("filters by category case-insensitively", func() {
			_, output, err := server.handleRecallAnswers(ctx, nil, RecallAnswersInput{Category: "Location"})
			Expect(err).NotTo(HaveOccurred())

			Expect(output.Count).To(Equal(1))
			Expect(output.Answers[0].Answer).To(Equal("221b Baker Street, London"))
		})

		It("filters by question text substring", func() {
			_, output, err := server.handleRecallAnswers(ctx, nil, RecallAnswersInput{Query: "call"})
			Expect(err).NotTo(HaveOccurred())

			Expect(output.Count).To(Equal(1))
			Expect(output.Answers[0].QuestionID).To(Equal("user-name"))
		})

		It("skips unanswered questions", func() {
			_, output, err := server.handleRecallAnswers(ctx, nil, RecallAnswersInput{Category: "house"})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Count).To(BeZero())
		})
	})

	Describe("onboarding_progress", func() {
		It("reports counts", func() {
			Expect(svc.SaveOrUpdateNote(ctx, "user-name", "Ada", nil)).To(Succeed())

			_, progress, err := server.handleProgress(ctx, nil, ProgressInput{})
			Expect(err).NotTo(HaveOccurred())

			Expect(progress.Questions).To(Equal(7))
			Expect(progress.Answered).To(Equal(1))
			Expect(progress.Complete).To(BeFalse())
		})
	})
})
