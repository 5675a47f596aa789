package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hearthhq/hearth/pkg/logger"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/inmemory"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

var _ = Describe("Server", func() {
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

		server = NewServer(Config{ListenAddr: ":0"}, svc, logger.Nop())
	})

	getJSON := func(path string, out any) int {
		req, err := http.NewRequest(http.MethodGet, path, nil)
		Expect(err).NotTo(HaveOccurred())

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())

		if out != nil {
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(json.Unmarshal(body, out)).To(Succeed())
		}
		return resp.StatusCode
	}

	Describe("GET /ping", func() {
		It("responds with pong", func() {
			var body string
			Expect(getJSON("/ping", &body)).To(Equal(fiber.StatusOK))
			Expect(body).To(Equal("pong"))
		})
	})

	Describe("GET /memory/stats", func() {
		It("reports the seeded catalog", func() {
			var stats map[string]any
			Expect(getJSON("/memory/stats", &stats)).To(Equal(fiber.StatusOK))

			Expect(stats["schema_version"]).To(BeEquivalentTo(memory.CurrentSchemaVersion))
			Expect(stats["questions"]).To(BeEquivalentTo(7))
			Expect(stats["notes"]).To(BeEquivalentTo(0))
		})
	})

	Describe("GET /questions", func() {
		It("lists the catalog in presentation order", func() {
			var body struct {
				Count     int               `json:"count"`
				Questions []memory.Question `json:"questions"`
			}
			Expect(getJSON("/questions", &body)).To(Equal(fiber.StatusOK))

			Expect(body.Count).To(Equal(7))
			Expect(body.Questions[0].ID).To(Equal(memory.QuestionID("user-name")))
		})
	})

	Describe("GET /questions/next", func() {
		It("returns the first unanswered question", func() {
			var q memory.Question
			Expect(getJSON("/questions/next", &q)).To(Equal(fiber.StatusOK))
			Expect(q.ID).To(Equal(memory.QuestionID("user-name")))
		})

		It("returns 204 once everything is answered", func() {
			for _, q := range svc.Snapshot().SortedQuestions() {
				Expect(svc.SaveOrUpdateNote(ctx, q.ID, "answered", nil)).To(Succeed())
			}

			Expect(getJSON("/questions/next", nil)).To(Equal(fiber.StatusNoContent))
		})
	})

	Describe("POST /questions", func() {
		post := func(body any) *http.Response {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())

			req, err := http.NewRequest(http.MethodPost, "/questions", bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			return resp
		}

		It("adds a question and returns 201", func() {
			resp := post(AddQuestionRequest{Text: "Do you have pets?"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusCreated))

			var q memory.Question
			data, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(json.Unmarshal(data, &q)).To(Succeed())

			Expect(q.Category).To(Equal(memory.CategoryOther))
			Expect(q.Priority).To(Equal(memory.PriorityMedium))
			_, ok := svc.Snapshot().Question(q.ID)
			Expect(ok).To(BeTrue())
		})

		It("rejects an empty body text", func() {
			resp := post(AddQuestionRequest{})
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})

	Describe("DELETE /questions/:id", func() {
		It("removes the question", func() {
			req, err := http.NewRequest(http.MethodDelete, "/questions/morning-briefing", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusNoContent))

			_, ok := svc.Snapshot().Question(memory.QuestionBriefing)
			Expect(ok).To(BeFalse())
		})

		It("returns 404 for an unknown question", func() {
			req, err := http.NewRequest(http.MethodDelete, "/questions/nope", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))
		})
	})

	Describe("notes endpoints", func() {
		put := func(id string, body PutNoteRequest) *http.Response {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())

			req, err := http.NewRequest(http.MethodPut, "/notes/"+id, bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			return resp
		}

		It("saves and fetches a note", func() {
			resp := put("user-name", PutNoteRequest{Answer: "Ada"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var note memory.Note
			Expect(getJSON("/notes/user-name", &note)).To(Equal(fiber.StatusOK))
			Expect(note.Answer).To(Equal("Ada"))
			Expect(note.Metadata).To(HaveKeyWithValue(memory.MetaSource, memory.SourceAPI))
		})

		It("keeps caller metadata over the injected source tag", func() {
			put("user-name", PutNoteRequest{
				Answer:   "Ada",
				Metadata: map[string]string{memory.MetaSource: "importer"},
			})

			note := svc.GetNote("user-name")
			Expect(note.Metadata[memory.MetaSource]).To(Equal("importer"))
		})

		It("returns 404 for a note on an unknown question", func() {
			Expect(put("nope", PutNoteRequest{Answer: "x"}).StatusCode).To(Equal(fiber.StatusNotFound))
			Expect(getJSON("/notes/nope", nil)).To(Equal(fiber.StatusNotFound))
		})

		It("rejects a blank answer", func() {
			Expect(put("user-name", PutNoteRequest{Answer: "   "}).StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("deletes a note idempotently", func() {
			put("user-name", PutNoteRequest{Answer: "Ada"})

			del := func() int {
				req, err := http.NewRequest(http.MethodDelete, "/notes/user-name", nil)
				Expect(err).NotTo(HaveOccurred())
				resp, err := server.app.Test(req)
				Expect(err).NotTo(HaveOccurred())
				return resp.StatusCode
			}

			Expect(del()).To(Equal(fiber.StatusNoContent))
			Expect(del()).To(Equal(fiber.StatusNoContent))
			Expect(svc.GetNote("user-name")).To(BeNil())
		})
	})

	Describe("GET /progress", func() {
		It("tracks answered counts", func() {
			Expect(svc.SaveOrUpdateNote(ctx, "user-name", "Ada", nil)).To(Succeed())

			var p memory.Progress
			Expect(getJSON("/progress", &p)).To(Equal(fiber.StatusOK))
			Expect(p.Answered).To(Equal(1))
			Expect(p.Questions).To(Equal(7))
		})
	})
})
