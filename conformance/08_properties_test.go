package conformance

import (
	"net/http"

	"github.com/google/uuid"
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

// createFresh creates a uniquely titled story and returns the identifier.
func createFresh(st *runState) string {
	resp, err := client.Create(st.cred, v1.StoryRequest{
		Title:       "Test Story " + uuid.NewString(),
		Description: "This is a test story.",
	})
	Expect(err).To(BeNil())
	Expect(resp.StatusCode).To(Equal(http.StatusCreated), resp.String())
	env, err := resp.Envelope()
	Expect(err).To(BeNil())
	Expect(env.HasStoryID()).To(BeTrue(), resp.String())
	return env.StoryID
}

func deleteLater(st *runState, id string) {
	g.DeferCleanup(func() {
		if _, err := client.Delete(st.cred, id); err != nil {
			g.GinkgoWriter.Printf("failed to delete story %s: %v\n", id, err)
		}
	})
}

var test08Properties = func(st *runState) {
	g.Context(titleProperties, func() {
		g.Specify("Two creates should yield distinct storyIds", func() {
			SkipIfPropertiesDisabled()
			idA := createFresh(st)
			deleteLater(st, idA)
			idB := createFresh(st)
			deleteLater(st, idB)
			Expect(idA).ToNot(Equal(idB))
		})

		g.Specify("A second DELETE of the same story should yield 400", func() {
			SkipIfPropertiesDisabled()
			id := createFresh(st)
			deleteLater(st, id)
			resp, err := client.Delete(st.cred, id)
			Expect(err).To(BeNil())
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.String())
			env, err := resp.Envelope()
			Expect(err).To(BeNil())
			Expect(env.Message).To(Equal(v1.MsgDeleted))

			resp, err = client.Delete(st.cred, id)
			Expect(err).To(BeNil())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest), resp.String())
			env, err = resp.Envelope()
			Expect(err).To(BeNil())
			Expect(env.Message).To(Equal(v1.MsgUnableToDelete))
		})

		g.Specify("GET all stories after a create should yield a non-empty list", func() {
			SkipIfPropertiesDisabled()
			deleteLater(st, createFresh(st))
			resp, err := client.List(st.cred)
			Expect(err).To(BeNil())
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.String())
			n, err := resp.ArrayLen()
			Expect(err).To(BeNil())
			Expect(n).To(BeNumerically(">", 0))
		})

		g.Specify("POST with every field empty should yield 400 whatever the body", func() {
			SkipIfPropertiesDisabled()
			resp, err := client.Create(st.cred, v1.StoryRequest{Title: "", Description: "", URL: ""})
			Expect(err).To(BeNil())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest), resp.String())
		})
	})
}
